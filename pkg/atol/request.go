package atol

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Request — запрос к API: метод, путь относительно базового адреса и тело
type Request interface {
	Method() string
	URL() string
	Body() ([]byte, error)
}

// OperationParams — параметры регистрации документа
type OperationParams struct {
	GroupCode  string
	Operation  Operation
	ExternalID string // Пустой — будет сгенерирован UUID
	Receipt    Receipt
	Info       Info
	Token      string
	Timestamp  time.Time // Нулевой — текущее время
}

// OperationRequest — запрос регистрации документа. Не меняется после создания.
type OperationRequest struct {
	groupCode  string
	operation  Operation
	externalID string
	receipt    Receipt
	info       Info
	token      string
	timestamp  time.Time
}

// NewOperationRequest проверяет параметры и создает запрос
func NewOperationRequest(p OperationParams) (*OperationRequest, error) {
	if p.GroupCode == "" {
		return nil, ErrEmptyGroupCode
	}
	if !p.Operation.Valid() {
		return nil, ErrInvalidOperation
	}
	if p.Token == "" {
		return nil, ErrEmptyToken
	}
	if err := p.Receipt.Validate(); err != nil {
		return nil, err
	}

	if p.ExternalID == "" {
		p.ExternalID = uuid.NewString()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}

	return &OperationRequest{
		groupCode:  p.GroupCode,
		operation:  p.Operation,
		externalID: p.ExternalID,
		receipt:    p.Receipt,
		info:       p.Info,
		token:      p.Token,
		timestamp:  p.Timestamp,
	}, nil
}

// GroupCode — код группы ККТ
func (r *OperationRequest) GroupCode() string { return r.groupCode }

// Operation — тип операции
func (r *OperationRequest) Operation() Operation { return r.operation }

// ExternalID — идентификатор документа во внешней системе
func (r *OperationRequest) ExternalID() string { return r.externalID }

// Receipt — чек
func (r *OperationRequest) Receipt() Receipt { return r.receipt }

// Info — служебный блок
func (r *OperationRequest) Info() Info { return r.info }

// Token — токен авторизации
func (r *OperationRequest) Token() string { return r.token }

// Timestamp — время создания документа
func (r *OperationRequest) Timestamp() time.Time { return r.timestamp }

// Method — POST
func (r *OperationRequest) Method() string {
	return http.MethodPost
}

// URL — <group>/<operation>?tokenid=<token>
func (r *OperationRequest) URL() string {
	return url.PathEscape(r.groupCode) + "/" + string(r.operation) + "?tokenid=" + url.QueryEscape(r.token)
}

// Body — {external_id,receipt,service,timestamp}
func (r *OperationRequest) Body() ([]byte, error) {
	return json.Marshal(struct {
		ExternalID string  `json:"external_id"`
		Receipt    Receipt `json:"receipt"`
		Service    Info    `json:"service"`
		Timestamp  string  `json:"timestamp"`
	}{
		ExternalID: r.externalID,
		Receipt:    r.receipt,
		Service:    r.info,
		Timestamp:  r.timestamp.Format(TimestampLayout),
	})
}

// Response разбирает ответ сервера на этот запрос
func (r *OperationRequest) Response(raw []byte) (*OperationResponse, error) {
	return ParseOperationResponse(raw)
}

// TokenRequest — запрос токена авторизации
type TokenRequest struct {
	login    string
	password string
}

// NewTokenRequest создает запрос токена; логин и пароль обязательны
func NewTokenRequest(login, password string) (*TokenRequest, error) {
	if login == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	return &TokenRequest{login: login, password: password}, nil
}

// Method — POST
func (r *TokenRequest) Method() string { return http.MethodPost }

// URL — getToken
func (r *TokenRequest) URL() string { return "getToken" }

// Body — {login,pass}
func (r *TokenRequest) Body() ([]byte, error) {
	return json.Marshal(struct {
		Login string `json:"login"`
		Pass  string `json:"pass"`
	}{
		Login: r.login,
		Pass:  r.password,
	})
}

// Response разбирает ответ на запрос токена
func (r *TokenRequest) Response(raw []byte) (*TokenResponse, error) {
	return ParseTokenResponse(raw)
}

// ReportRequest — запрос результата обработки документа
type ReportRequest struct {
	groupCode string
	uuid      string
	token     string
}

// NewReportRequest создает запрос отчета по uuid документа
func NewReportRequest(groupCode, docUUID, token string) (*ReportRequest, error) {
	if groupCode == "" {
		return nil, ErrEmptyGroupCode
	}
	if docUUID == "" {
		return nil, ErrEmptyUUID
	}
	if token == "" {
		return nil, ErrEmptyToken
	}
	return &ReportRequest{groupCode: groupCode, uuid: docUUID, token: token}, nil
}

// Method — GET
func (r *ReportRequest) Method() string { return http.MethodGet }

// URL — <group>/report/<uuid>?tokenid=<token>
func (r *ReportRequest) URL() string {
	return url.PathEscape(r.groupCode) + "/report/" + url.PathEscape(r.uuid) + "?tokenid=" + url.QueryEscape(r.token)
}

// Body — у запроса отчета тела нет
func (r *ReportRequest) Body() ([]byte, error) { return nil, nil }

// Response разбирает отчет о документе
func (r *ReportRequest) Response(raw []byte) (*ReportResponse, error) {
	return ParseReportResponse(raw)
}
