package atol

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Client определяет интерфейс клиента АТОЛ Онлайн
type Client interface {
	// GetToken получает токен авторизации по логину и паролю из конфигурации
	GetToken(ctx context.Context) (*TokenResponse, error)

	// Register отправляет документ на регистрацию и возвращает его uuid
	Register(ctx context.Context, p OperationParams) (*OperationResponse, error)

	// Report запрашивает результат обработки документа
	Report(ctx context.Context, groupCode, docUUID, token string) (*ReportResponse, error)

	// Close освобождает ресурсы клиента
	Close() error
}

// New создает клиент с HTTP-транспортом
func New(cfg Config) Client {
	cfg = cfg.withDefaults()
	return &atolClient{
		cfg:       cfg,
		transport: NewHTTPTransport(cfg.Timeout, cfg.Logger),
	}
}

// NewWithTransport создает клиент с пользовательским транспортом (для тестов)
func NewWithTransport(cfg Config, transport Transport) Client {
	return &atolClient{
		cfg:       cfg.withDefaults(),
		transport: transport,
	}
}

type atolClient struct {
	cfg       Config
	transport Transport
}

func (c *atolClient) GetToken(ctx context.Context) (*TokenResponse, error) {
	req, err := NewTokenRequest(c.cfg.Login, c.cfg.Password)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	raw, err := c.send(ctx, req)
	if err == nil {
		var resp *TokenResponse
		if resp, err = req.Response(raw); err == nil {
			c.cfg.Metrics.observe("token", started, nil)
			return resp, nil
		}
	}
	c.cfg.Metrics.observe("token", started, err)
	return nil, err
}

func (c *atolClient) Register(ctx context.Context, p OperationParams) (*OperationResponse, error) {
	if p.Timestamp.IsZero() {
		p.Timestamp = c.cfg.Now()
	}
	req, err := NewOperationRequest(p)
	if err != nil {
		return nil, err
	}

	c.log("Registering %s document %s in group %s, total %s",
		req.Operation(), req.ExternalID(), req.GroupCode(), req.Receipt().Total())

	started := time.Now()
	raw, err := c.send(ctx, req)
	if err == nil {
		var resp *OperationResponse
		if resp, err = req.Response(raw); err == nil {
			c.cfg.Metrics.observe(string(req.Operation()), started, nil)
			c.log("Document %s accepted, uuid %s, status %s", req.ExternalID(), resp.UUID, resp.Status)
			return resp, nil
		}
	}
	c.cfg.Metrics.observe(string(req.Operation()), started, err)
	return nil, err
}

func (c *atolClient) Report(ctx context.Context, groupCode, docUUID, token string) (*ReportResponse, error) {
	req, err := NewReportRequest(groupCode, docUUID, token)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	raw, err := c.send(ctx, req)
	if err == nil {
		var resp *ReportResponse
		if resp, err = req.Response(raw); err == nil {
			c.cfg.Metrics.observe("report", started, nil)
			return resp, nil
		}
	}
	c.cfg.Metrics.observe("report", started, err)
	return nil, err
}

func (c *atolClient) Close() error {
	return c.transport.Close()
}

func (c *atolClient) send(ctx context.Context, req Request) ([]byte, error) {
	body, err := req.Body()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request: %w", err)
	}

	raw, err := c.transport.Do(ctx, req.Method(), c.endpoint(req.URL()), body)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return raw, nil
}

func (c *atolClient) endpoint(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + path
}

func (c *atolClient) log(format string, args ...interface{}) {
	if c.cfg.Logger != nil {
		c.cfg.Logger(fmt.Sprintf(format, args...))
	}
}
