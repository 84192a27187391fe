package fiscal

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"atolonline/internal/domain/models"
	"atolonline/pkg/atol"
)

// LoadDocument читает описание чека из YAML- или JSON-файла.
func LoadDocument(path string) (*models.ReceiptDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения документа: %w", err)
	}

	var doc models.ReceiptDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ошибка разбора документа %s: %w", path, err)
	}
	return &doc, nil
}

// BuildReceipt переводит описание документа в чек и тип операции.
// Пустые operation и sno означают sell и usn_income.
func BuildReceipt(doc *models.ReceiptDocument) (atol.Receipt, atol.Operation, error) {
	op := atol.Operation(doc.Operation)
	if op == "" {
		op = atol.OperationSell
	}
	if !op.Valid() {
		return atol.Receipt{}, "", fmt.Errorf("%w: %q", atol.ErrInvalidOperation, doc.Operation)
	}

	b := atol.NewReceiptBuilder().Email(doc.Email).Phone(doc.Phone)
	if doc.Sno != "" {
		b.Sno(atol.Sno(doc.Sno))
	}

	for i, it := range doc.Items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return atol.Receipt{}, "", fmt.Errorf("позиция %d (%s): неверная цена %q: %w", i+1, it.Name, it.Price, err)
		}
		quantity := decimal.NewFromInt(1)
		if it.Quantity != "" {
			if quantity, err = decimal.NewFromString(it.Quantity); err != nil {
				return atol.Receipt{}, "", fmt.Errorf("позиция %d (%s): неверное количество %q: %w", i+1, it.Name, it.Quantity, err)
			}
		}
		tax := atol.TaxRate(it.Tax)
		if tax == "" {
			tax = atol.TaxNone
		}
		b.AddItem(atol.NewItem(it.Name, price, quantity, tax))
	}

	for i, p := range doc.Payments {
		sum, err := decimal.NewFromString(p.Sum)
		if err != nil {
			return atol.Receipt{}, "", fmt.Errorf("оплата %d: неверная сумма %q: %w", i+1, p.Sum, err)
		}
		typ := atol.PaymentType(p.Type)
		if typ != atol.PaymentCash && typ != atol.PaymentElectronic {
			return atol.Receipt{}, "", fmt.Errorf("оплата %d: неизвестный вид оплаты %d", i+1, p.Type)
		}
		b.AddPayment(atol.NewPayment(typ, sum))
	}

	receipt := b.Build()
	if err := receipt.Validate(); err != nil {
		return atol.Receipt{}, "", err
	}
	return receipt, op, nil
}
