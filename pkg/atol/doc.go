// Package atol provides a client for the ATOL Online v3 fiscal receipt API.
// It models receipts, items, payments and the merchant service block, serializes
// them into the JSON the API expects and classifies the API error codes into
// typed errors.
//
// Key Features:
//   - Immutable receipt values built with ReceiptBuilder
//   - VAT amounts computed with decimal arithmetic and half-up rounding
//   - Operation, token and report requests with their wire URLs and bodies
//   - Error code classification usable with errors.Is and errors.As
//   - Pluggable transport (net/http with OpenTelemetry instrumentation by default)
//   - Optional Prometheus metrics
//
// Example Usage:
//
//	client := atol.New(atol.Config{
//	    Login:    "login",
//	    Password: "secret",
//	    Timeout:  30 * time.Second,
//	})
//
//	token, err := client.GetToken(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	receipt := atol.NewReceiptBuilder().
//	    Sno(atol.SnoUSNIncome).
//	    Email("buyer@example.com").
//	    AddItem(atol.NewItem("Coffee", decimal.NewFromInt(150), decimal.NewFromInt(2), atol.TaxVat18)).
//	    AddPayment(atol.NewPayment(atol.PaymentElectronic, decimal.NewFromInt(300))).
//	    Build()
//
//	resp, err := client.Register(ctx, atol.OperationParams{
//	    GroupCode: "group_code",
//	    Operation: atol.OperationSell,
//	    Receipt:   receipt,
//	    Info:      atol.NewInfo("1111111111", "shop.example.com", ""),
//	    Token:     token.Token,
//	})
//	if errors.Is(err, atol.ErrTokenExpired) {
//	    // request a new token and retry
//	}
//
// Registration is asynchronous on the API side: the returned uuid is used with
// Client.Report to fetch the fiscal data once the status becomes "done".
package atol
