package models

// ReceiptDocument — описание чека во входном файле (YAML или JSON)
type ReceiptDocument struct {
	Operation  string            `yaml:"operation"`
	ExternalID string            `yaml:"external_id"`
	Sno        string            `yaml:"sno"`
	Email      string            `yaml:"email"`
	Phone      string            `yaml:"phone"`
	Items      []DocumentItem    `yaml:"items"`
	Payments   []DocumentPayment `yaml:"payments"`
}

// DocumentItem — позиция чека. Числа задаются строками, чтобы не терять копейки.
type DocumentItem struct {
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Quantity string `yaml:"quantity"`
	Tax      string `yaml:"tax"`
}

// DocumentPayment — оплата: 0 — наличные, 1 — безналичные
type DocumentPayment struct {
	Type int    `yaml:"type"`
	Sum  string `yaml:"sum"`
}
