package atol

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// MaxItemNameLength — предельная длина наименования предмета расчета (тег 1030)
const MaxItemNameLength = 128

var (
	rate18   = decimal.RequireFromString("0.18")
	rate10   = decimal.RequireFromString("0.10")
	dec18    = decimal.NewFromInt(18)
	dec10    = decimal.NewFromInt(10)
	dec118   = decimal.NewFromInt(118)
	dec110   = decimal.NewFromInt(110)
	moneyExp = int32(2)
)

// Item — позиция чека. Значение неизменяемо, производные поля вычисляются.
type Item struct {
	name     string
	price    decimal.Decimal
	quantity decimal.Decimal
	tax      TaxRate
}

// NewItem создает позицию чека
func NewItem(name string, price, quantity decimal.Decimal, tax TaxRate) Item {
	return Item{
		name:     normalizeName(name),
		price:    price,
		quantity: quantity,
		tax:      tax,
	}
}

// WithTax возвращает копию позиции с другой ставкой НДС
func (i Item) WithTax(tax TaxRate) Item {
	i.tax = tax
	return i
}

// Name — наименование предмета расчета
func (i Item) Name() string { return i.name }

// Price — цена за единицу
func (i Item) Price() decimal.Decimal { return i.price }

// Quantity — количество
func (i Item) Quantity() decimal.Decimal { return i.quantity }

// Tax — ставка НДС
func (i Item) Tax() TaxRate { return i.tax }

// Sum — стоимость позиции: цена * количество
func (i Item) Sum() decimal.Decimal {
	return i.price.Mul(i.quantity)
}

// TaxSum — сумма НДС позиции, округленная до копеек (половина вверх)
func (i Item) TaxSum() decimal.Decimal {
	sum := i.Sum()
	switch i.tax {
	case TaxVat18:
		return sum.Mul(rate18).Round(moneyExp)
	case TaxVat10:
		return sum.Mul(rate10).Round(moneyExp)
	case TaxVat118:
		return sum.Mul(dec18).Div(dec118).Round(moneyExp)
	case TaxVat110:
		return sum.Mul(dec10).Div(dec110).Round(moneyExp)
	default:
		return decimal.Zero
	}
}

// MarshalJSON формирует {name,price,quantity,sum,tax,tax_sum}
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string      `json:"name"`
		Price    json.Number `json:"price"`
		Quantity json.Number `json:"quantity"`
		Sum      json.Number `json:"sum"`
		Tax      TaxRate     `json:"tax"`
		TaxSum   json.Number `json:"tax_sum"`
	}{
		Name:     i.name,
		Price:    number(i.price),
		Quantity: number(i.quantity),
		Sum:      number(i.Sum()),
		Tax:      i.tax,
		TaxSum:   number(i.TaxSum()),
	})
}

// number выводит decimal в JSON как число, а не строку
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func normalizeName(s string) string {
	s = strings.TrimSpace(norm.NFC.String(s))
	if utf8.RuneCountInString(s) > MaxItemNameLength {
		s = string([]rune(s)[:MaxItemNameLength])
	}
	return s
}
