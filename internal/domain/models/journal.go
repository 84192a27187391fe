package models

import "time"

// JournalEntry — запись журнала отправленных документов
type JournalEntry struct {
	ExternalID string      `json:"external_id"`          // Идентификатор документа в системе магазина
	Operation  string      `json:"operation"`            // sell, sell_refund, ...
	GroupCode  string      `json:"group_code"`           // Группа ККТ
	UUID       string      `json:"uuid,omitempty"`       // Идентификатор документа в АТОЛ Онлайн
	Status     string      `json:"status"`               // wait, done, fail
	Total      string      `json:"total"`                // Итог чека
	ErrorCode  int         `json:"error_code,omitempty"` // Код ошибки API
	ErrorKind  string      `json:"error_kind,omitempty"`
	ErrorText  string      `json:"error_text,omitempty"`
	Fiscal     *FiscalData `json:"fiscal,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// FiscalData — фискальные признаки зарегистрированного чека
type FiscalData struct {
	FnNumber                string `json:"fn_number"`
	ShiftNumber             int    `json:"shift_number"`
	ReceiptDatetime         string `json:"receipt_datetime"`
	FiscalReceiptNumber     int    `json:"fiscal_receipt_number"`
	FiscalDocumentNumber    int    `json:"fiscal_document_number"`
	FiscalDocumentAttribute int64  `json:"fiscal_document_attribute"`
	EcrRegistrationNumber   string `json:"ecr_registration_number"`
	FnsSite                 string `json:"fns_site"`
}

// IsFinal сообщает, что документ больше не изменит статус
func (e *JournalEntry) IsFinal() bool {
	return e.Status == "done" || e.Status == "fail"
}
