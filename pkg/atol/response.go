package atol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Code — код ошибки API. Сервер присылает его то числом, то строкой.
type Code int

// UnmarshalJSON принимает число, строку с числом, пустую строку и null
func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("atol: bad code %s: %w", raw, err)
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*c = 0
			return nil
		}
	}

	n, err := json.Number(raw).Int64()
	if err != nil {
		return fmt.Errorf("atol: bad code %s: %w", raw, err)
	}
	*c = Code(n)
	return nil
}

// ErrorResponse — объект error из ответа API
type ErrorResponse struct {
	Code Code   `json:"code"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// TokenResponse — ответ на запрос токена
type TokenResponse struct {
	Code  Code   `json:"code"`
	Text  string `json:"text"`
	Token string `json:"token"`
}

// Err возвращает ошибку, если токен не выдан. Коды 0 и 1 — успешная выдача.
func (t *TokenResponse) Err() error {
	if t.Code > 1 {
		return &APIError{
			Kind: KindTokenRejected,
			Code: int(t.Code),
			Text: t.Text,
			Type: "token",
		}
	}
	if t.Token == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidResponse)
	}
	return nil
}

// OperationResponse — ответ на регистрацию документа
type OperationResponse struct {
	UUID      string         `json:"uuid"`
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Error     *ErrorResponse `json:"error"`
}

// ReportPayload — фискальные данные зарегистрированного документа
type ReportPayload struct {
	Total                   decimal.Decimal `json:"total"`
	FnsSite                 string          `json:"fns_site"`
	FnNumber                string          `json:"fn_number"`
	ShiftNumber             int             `json:"shift_number"`
	ReceiptDatetime         string          `json:"receipt_datetime"`
	FiscalReceiptNumber     int             `json:"fiscal_receipt_number"`
	FiscalDocumentNumber    int             `json:"fiscal_document_number"`
	EcrRegistrationNumber   string          `json:"ecr_registration_number"`
	FiscalDocumentAttribute int64           `json:"fiscal_document_attribute"`
}

// ReportResponse — результат обработки документа
type ReportResponse struct {
	UUID        string         `json:"uuid"`
	Status      string         `json:"status"`
	Timestamp   string         `json:"timestamp"`
	Error       *ErrorResponse `json:"error"`
	Payload     *ReportPayload `json:"payload"`
	GroupCode   string         `json:"group_code"`
	DaemonCode  string         `json:"daemon_code"`
	DeviceCode  string         `json:"device_code"`
	CallbackURL string         `json:"callback_url"`
}

// ParseTokenResponse разбирает ответ getToken
func ParseTokenResponse(raw []byte) (*TokenResponse, error) {
	var resp TokenResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseOperationResponse разбирает ответ на операцию.
// Непустой error превращается в *APIError; ответ без error и без uuid — ErrInvalidResponse.
func ParseOperationResponse(raw []byte) (*OperationResponse, error) {
	var resp OperationResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.Error != nil {
		return nil, Classify(*resp.Error)
	}
	if resp.UUID == "" {
		return nil, fmt.Errorf("%w: no uuid and no error", ErrInvalidResponse)
	}
	return &resp, nil
}

// ParseReportResponse разбирает ответ на запрос отчета
func ParseReportResponse(raw []byte) (*ReportResponse, error) {
	var resp ReportResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.Error != nil {
		return nil, Classify(*resp.Error)
	}
	return &resp, nil
}
