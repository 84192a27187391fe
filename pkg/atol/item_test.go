package atol

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewItem(t *testing.T) {
	item := NewItem("Title", dec("1200.00"), dec("3"), TaxNone)

	if item.Name() != "Title" {
		t.Errorf("Name = %q", item.Name())
	}
	if !item.Price().Equal(dec("1200")) {
		t.Errorf("Price = %s", item.Price())
	}
	if !item.Quantity().Equal(dec("3")) {
		t.Errorf("Quantity = %s", item.Quantity())
	}
	if !item.Sum().Equal(dec("3600")) {
		t.Errorf("Sum = %s, expected 3600", item.Sum())
	}
	if item.Tax() != TaxNone {
		t.Errorf("Tax = %s", item.Tax())
	}
	if !item.TaxSum().IsZero() {
		t.Errorf("TaxSum = %s, expected 0", item.TaxSum())
	}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	assertJSON(t, data, `{"name":"Title","price":1200,"quantity":3,"sum":3600,"tax":"none","tax_sum":0}`)
}

// TestItemTaxSum проверяет формулы НДС для каждой ставки
func TestItemTaxSum(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity string
		tax      TaxRate
		expected string
	}{
		{"none", "1200", "3", TaxNone, "0"},
		{"vat0", "1200", "3", TaxVat0, "0"},
		{"vat18", "1200", "3", TaxVat18, "648"},
		{"vat10", "1200", "3", TaxVat10, "360"},
		{"vat118", "1200", "3", TaxVat118, "549.15"},
		{"vat110", "1200", "3", TaxVat110, "327.27"},
		{"vat18 rounding up", "0.25", "1", TaxVat18, "0.05"},
		{"vat10 half up", "0.05", "1", TaxVat10, "0.01"},
		{"vat118 fractional quantity", "99.99", "1.5", TaxVat118, "22.88"},
		{"vat110 small", "1", "1", TaxVat110, "0.09"},
		{"unknown rate", "100", "1", TaxRate("vat20"), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewItem("x", dec(tt.price), dec(tt.quantity), tt.tax)
			if got := item.TaxSum(); !got.Equal(dec(tt.expected)) {
				t.Errorf("TaxSum = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestItemWithTax(t *testing.T) {
	item := NewItem("Title", dec("1200"), dec("3"), TaxNone)
	vat := item.WithTax(TaxVat18)

	if item.Tax() != TaxNone {
		t.Error("WithTax modified the original item")
	}
	if !vat.TaxSum().Equal(dec("648")) {
		t.Errorf("TaxSum = %s, expected 648", vat.TaxSum())
	}
}

func TestItemNameNormalization(t *testing.T) {
	// "й" в разложенной форме (и + кратка) сводится к одному символу
	item := NewItem("  Ча\u0438\u0306  ", dec("1"), dec("1"), TaxNone)
	if item.Name() != "Чай" {
		t.Errorf("Name = %q, expected %q", item.Name(), "Чай")
	}

	long := NewItem(strings.Repeat("я", MaxItemNameLength+10), dec("1"), dec("1"), TaxNone)
	if n := utf8.RuneCountInString(long.Name()); n != MaxItemNameLength {
		t.Errorf("name length = %d, expected %d", n, MaxItemNameLength)
	}
}
