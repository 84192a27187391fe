package fiscal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atolonline/internal/domain/models"
	"atolonline/pkg/atol"
)

func atolRate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLoadDocumentYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
operation: sell_refund
external_id: ext-9
sno: osn
phone: "79990000000"
items:
  - name: Кофе
    price: "150.50"
    quantity: "2"
    tax: vat118
payments:
  - type: 0
    sum: "301"
`), 0644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)

	receipt, op, err := BuildReceipt(doc)
	require.NoError(t, err)
	assert.Equal(t, atol.OperationSellRefund, op)
	assert.Equal(t, atol.SnoOSN, receipt.Attributes().Sno)
	assert.True(t, receipt.Total().Equal(atolRate("301")))
	assert.True(t, receipt.Items()[0].TaxSum().Equal(atolRate("45.92")))
	assert.Equal(t, atol.PaymentCash, receipt.Payments()[0].Type())
}

func TestLoadDocumentJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"email":"a@b.c","items":[{"name":"x","price":"10"}],"payments":[{"type":1,"sum":"10"}]}`), 0644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)

	receipt, op, err := BuildReceipt(doc)
	require.NoError(t, err)
	assert.Equal(t, atol.OperationSell, op)
	assert.Equal(t, atol.SnoUSNIncome, receipt.Attributes().Sno)
	assert.Equal(t, atol.TaxNone, receipt.Items()[0].Tax())
	assert.True(t, receipt.Items()[0].Quantity().Equal(atolRate("1")))
}

func TestBuildReceiptErrors(t *testing.T) {
	base := func() *models.ReceiptDocument { return sampleDocument() }

	tests := []struct {
		name   string
		modify func(d *models.ReceiptDocument)
		target error
	}{
		{"bad operation", func(d *models.ReceiptDocument) { d.Operation = "sale" }, atol.ErrInvalidOperation},
		{"bad price", func(d *models.ReceiptDocument) { d.Items[0].Price = "12,50" }, nil},
		{"bad quantity", func(d *models.ReceiptDocument) { d.Items[0].Quantity = "many" }, nil},
		{"bad payment sum", func(d *models.ReceiptDocument) { d.Payments[0].Sum = "" }, nil},
		{"bad payment type", func(d *models.ReceiptDocument) { d.Payments[0].Type = 5 }, nil},
		{"bad tax", func(d *models.ReceiptDocument) { d.Items[0].Tax = "vat20" }, atol.ErrInvalidTaxRate},
		{"no contact", func(d *models.ReceiptDocument) { d.Email = "" }, atol.ErrNoContact},
		{"no items", func(d *models.ReceiptDocument) { d.Items = nil }, atol.ErrEmptyReceipt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := base()
			tt.modify(doc)
			_, _, err := BuildReceipt(doc)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}
