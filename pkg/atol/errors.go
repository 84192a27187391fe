package atol

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyGroupCode   = errors.New("atol: group code is empty")
	ErrInvalidOperation = errors.New("atol: unsupported operation")
	ErrEmptyToken       = errors.New("atol: token is empty")
	ErrEmptyCredentials = errors.New("atol: login and password are required")
	ErrEmptyUUID        = errors.New("atol: document uuid is empty")
	ErrEmptyReceipt     = errors.New("atol: receipt has no items")
	ErrNoContact        = errors.New("atol: receipt needs an email or a phone")
	ErrInvalidSno       = errors.New("atol: invalid taxation system")
	ErrInvalidTaxRate   = errors.New("atol: invalid tax rate")
	ErrInvalidResponse  = errors.New("atol: invalid response from API")
	ErrUnexpectedStatus = errors.New("atol: unexpected HTTP status")
)

// Ошибки, соответствующие кодам API. Используются с errors.Is.
var (
	ErrProcessing            = errors.New("atol: document processing error")
	ErrBadRequest            = errors.New("atol: bad request")
	ErrOperationNotSupported = errors.New("atol: operation not supported")
	ErrMissingToken          = errors.New("atol: token is missing in request")
	ErrTokenNotExist         = errors.New("atol: token does not exist")
	ErrTokenExpired          = errors.New("atol: token expired")
	ErrExternalIDExists      = errors.New("atol: document with this external_id already exists")
	ErrGroupCodeMismatch     = errors.New("atol: group code does not match token")
	ErrExternalIDMissing     = errors.New("atol: external_id is missing")
	ErrUndefined             = errors.New("atol: undefined API error")
	ErrTokenRejected         = errors.New("atol: token was not issued")
	ErrUnknown               = errors.New("atol: unknown API error")
)

// ErrorKind — вид ошибки API, определяемый по ее коду
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindProcessing
	KindBadRequest
	KindOperationNotSupported
	KindMissingToken
	KindTokenNotExist
	KindTokenExpired
	KindExternalIDExists
	KindGroupCodeMismatch
	KindExternalIDMissing
	KindUndefined
	KindTokenRejected
)

// String возвращает имя вида ошибки для логов и меток метрик
func (k ErrorKind) String() string {
	switch k {
	case KindProcessing:
		return "processing"
	case KindBadRequest:
		return "bad_request"
	case KindOperationNotSupported:
		return "operation_not_supported"
	case KindMissingToken:
		return "missing_token"
	case KindTokenNotExist:
		return "token_not_exist"
	case KindTokenExpired:
		return "token_expired"
	case KindExternalIDExists:
		return "external_id_exists"
	case KindGroupCodeMismatch:
		return "group_code_mismatch"
	case KindExternalIDMissing:
		return "external_id_missing"
	case KindUndefined:
		return "undefined"
	case KindTokenRejected:
		return "token_rejected"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindProcessing:
		return ErrProcessing
	case KindBadRequest:
		return ErrBadRequest
	case KindOperationNotSupported:
		return ErrOperationNotSupported
	case KindMissingToken:
		return ErrMissingToken
	case KindTokenNotExist:
		return ErrTokenNotExist
	case KindTokenExpired:
		return ErrTokenExpired
	case KindExternalIDExists:
		return ErrExternalIDExists
	case KindGroupCodeMismatch:
		return ErrGroupCodeMismatch
	case KindExternalIDMissing:
		return ErrExternalIDMissing
	case KindUndefined:
		return ErrUndefined
	case KindTokenRejected:
		return ErrTokenRejected
	default:
		return ErrUnknown
	}
}

// APIError — ошибка, которую вернул сервер АТОЛ Онлайн
type APIError struct {
	Kind ErrorKind
	Code int
	Text string
	Type string
}

// Error формирует текст ошибки с кодом, видом и описанием сервера
func (e *APIError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("atol: API error %d (%s)", e.Code, e.Kind)
	}
	return fmt.Sprintf("atol: API error %d (%s): %s", e.Code, e.Kind, e.Text)
}

// Unwrap связывает ошибку с сигнальным значением ее вида
func (e *APIError) Unwrap() error {
	return e.Kind.sentinel()
}

// Classify сопоставляет код ошибки API с ее видом.
// Неизвестный код дает KindUnknown с исходными code/text/type.
func Classify(resp ErrorResponse) *APIError {
	var kind ErrorKind
	switch resp.Code {
	case 1:
		kind = KindProcessing
	case 2:
		kind = KindBadRequest
	case 3:
		kind = KindOperationNotSupported
	case 4:
		kind = KindMissingToken
	case 5:
		kind = KindTokenNotExist
	case 6:
		kind = KindTokenExpired
	case 10:
		kind = KindExternalIDExists
	case 22:
		kind = KindGroupCodeMismatch
	case 23:
		kind = KindExternalIDMissing
	case 26:
		kind = KindUndefined
	default:
		kind = KindUnknown
	}
	return &APIError{
		Kind: kind,
		Code: int(resp.Code),
		Text: resp.Text,
		Type: resp.Type,
	}
}

// KindOf извлекает вид ошибки API из цепочки ошибок
func KindOf(err error) (ErrorKind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return KindUnknown, false
}
