package atol

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Attributes — реквизиты чека
type Attributes struct {
	Sno   Sno
	Email string
	Phone string
}

// Receipt — чек. Создается через ReceiptBuilder и после этого не меняется.
type Receipt struct {
	attrs    Attributes
	items    []Item
	payments []Payment
	total    decimal.Decimal
}

// Attributes возвращает реквизиты чека
func (r Receipt) Attributes() Attributes { return r.attrs }

// Total — итог чека, сумма стоимостей позиций
func (r Receipt) Total() decimal.Decimal { return r.total }

// Items возвращает копию списка позиций
func (r Receipt) Items() []Item {
	return append([]Item(nil), r.items...)
}

// Payments возвращает копию списка оплат
func (r Receipt) Payments() []Payment {
	return append([]Payment(nil), r.payments...)
}

// Validate проверяет чек перед отправкой
func (r Receipt) Validate() error {
	if len(r.items) == 0 {
		return ErrEmptyReceipt
	}
	if r.attrs.Email == "" && r.attrs.Phone == "" {
		return ErrNoContact
	}
	if !r.attrs.Sno.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSno, r.attrs.Sno)
	}
	for _, it := range r.items {
		if !it.tax.Valid() {
			return fmt.Errorf("%w: %q (%s)", ErrInvalidTaxRate, it.tax, it.name)
		}
	}
	return nil
}

// MarshalJSON формирует {attributes:{sno,email,phone},items,total,payments}
func (r Receipt) MarshalJSON() ([]byte, error) {
	items := r.items
	if items == nil {
		items = []Item{}
	}
	payments := r.payments
	if payments == nil {
		payments = []Payment{}
	}

	type attributes struct {
		Sno   Sno    `json:"sno"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	return json.Marshal(struct {
		Attributes attributes  `json:"attributes"`
		Items      []Item      `json:"items"`
		Total      json.Number `json:"total"`
		Payments   []Payment   `json:"payments"`
	}{
		Attributes: attributes{Sno: r.attrs.Sno, Email: r.attrs.Email, Phone: r.attrs.Phone},
		Items:      items,
		Total:      number(r.total),
		Payments:   payments,
	})
}

// ReceiptBuilder накапливает позиции и оплаты. Итог растет с каждой позицией.
type ReceiptBuilder struct {
	r Receipt
}

// NewReceiptBuilder создает построитель чека с УСН (доходы) по умолчанию
func NewReceiptBuilder() *ReceiptBuilder {
	return &ReceiptBuilder{r: Receipt{
		attrs: Attributes{Sno: SnoUSNIncome},
		total: decimal.Zero,
	}}
}

// Sno задает систему налогообложения
func (b *ReceiptBuilder) Sno(s Sno) *ReceiptBuilder {
	b.r.attrs.Sno = s
	return b
}

// Email задает адрес покупателя для электронного чека
func (b *ReceiptBuilder) Email(email string) *ReceiptBuilder {
	b.r.attrs.Email = email
	return b
}

// Phone задает телефон покупателя для электронного чека
func (b *ReceiptBuilder) Phone(phone string) *ReceiptBuilder {
	b.r.attrs.Phone = phone
	return b
}

// AddItem добавляет позицию и увеличивает итог на ее стоимость
func (b *ReceiptBuilder) AddItem(item Item) *ReceiptBuilder {
	b.r.items = append(b.r.items, item)
	b.r.total = b.r.total.Add(item.Sum())
	return b
}

// AddItems добавляет несколько позиций по порядку
func (b *ReceiptBuilder) AddItems(items ...Item) *ReceiptBuilder {
	for _, it := range items {
		b.AddItem(it)
	}
	return b
}

// AddPayment добавляет оплату
func (b *ReceiptBuilder) AddPayment(p Payment) *ReceiptBuilder {
	b.r.payments = append(b.r.payments, p)
	return b
}

// AddPayments добавляет несколько оплат по порядку
func (b *ReceiptBuilder) AddPayments(payments ...Payment) *ReceiptBuilder {
	b.r.payments = append(b.r.payments, payments...)
	return b
}

// Build возвращает чек; дальнейшие вызовы построителя его не затрагивают
func (b *ReceiptBuilder) Build() Receipt {
	r := b.r
	r.items = append([]Item(nil), b.r.items...)
	r.payments = append([]Payment(nil), b.r.payments...)
	return r
}
