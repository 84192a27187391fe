package atol

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Payment — оплата по чеку
type Payment struct {
	typ PaymentType
	sum decimal.Decimal
}

// NewPayment создает оплату заданного вида
func NewPayment(typ PaymentType, sum decimal.Decimal) Payment {
	return Payment{typ: typ, sum: sum}
}

// Type — вид оплаты
func (p Payment) Type() PaymentType { return p.typ }

// Sum — сумма оплаты
func (p Payment) Sum() decimal.Decimal { return p.sum }

// MarshalJSON формирует {sum,type}
func (p Payment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Sum  json.Number `json:"sum"`
		Type PaymentType `json:"type"`
	}{
		Sum:  number(p.sum),
		Type: p.typ,
	})
}
