package atol

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// MockTransport — мок-транспорт для тестирования
type MockTransport struct {
	OnDo    func(ctx context.Context, method, url string, body []byte) ([]byte, error)
	OnClose func() error
}

func (m *MockTransport) Do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	if m.OnDo != nil {
		return m.OnDo(ctx, method, url, body)
	}
	return nil, nil
}

func (m *MockTransport) Close() error {
	if m.OnClose != nil {
		return m.OnClose()
	}
	return nil
}

func fixedNow() time.Time {
	return time.Date(2018, 7, 1, 9, 5, 3, 0, time.UTC)
}

func TestClientGetToken(t *testing.T) {
	var gotMethod, gotURL string
	var gotBody []byte
	mock := &MockTransport{
		OnDo: func(ctx context.Context, method, url string, body []byte) ([]byte, error) {
			gotMethod, gotURL, gotBody = method, url, body
			return []byte(`{"code":0,"text":null,"token":"tkn"}`), nil
		},
	}
	client := NewWithTransport(Config{Login: "user", Password: "secret"}, mock)

	resp, err := client.GetToken(context.Background())
	if err != nil {
		t.Fatalf("GetToken: %v", err)
	}
	if resp.Token != "tkn" {
		t.Errorf("Token = %q", resp.Token)
	}
	if gotMethod != http.MethodPost || gotURL != "https://online.atol.ru/possystem/v3/getToken" {
		t.Errorf("unexpected request %s %s", gotMethod, gotURL)
	}
	assertJSON(t, gotBody, `{"login":"user","pass":"secret"}`)
}

func TestClientGetTokenWithoutCredentials(t *testing.T) {
	called := false
	mock := &MockTransport{
		OnDo: func(ctx context.Context, method, url string, body []byte) ([]byte, error) {
			called = true
			return nil, nil
		},
	}
	client := NewWithTransport(Config{}, mock)

	if _, err := client.GetToken(context.Background()); !errors.Is(err, ErrEmptyCredentials) {
		t.Errorf("expected ErrEmptyCredentials, got %v", err)
	}
	if called {
		t.Error("transport must not be called without credentials")
	}
}

func TestClientRegister(t *testing.T) {
	mock := &MockTransport{}
	client := NewWithTransport(Config{BaseURL: "http://atol.local/v3", Now: fixedNow}, mock)

	t.Run("Successful register", func(t *testing.T) {
		var gotURL string
		var gotBody []byte
		mock.OnDo = func(ctx context.Context, method, url string, body []byte) ([]byte, error) {
			gotURL, gotBody = url, body
			return []byte(`{"uuid":"u-1","error":null,"status":"wait","timestamp":"01.07.2018 09:05:04"}`), nil
		}

		resp, err := client.Register(context.Background(), OperationParams{
			GroupCode:  "test",
			Operation:  OperationSell,
			ExternalID: "ext-1",
			Receipt:    testReceipt(),
			Info:       testInfo(),
			Token:      "tkn",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if resp.UUID != "u-1" || resp.Status != StatusWait {
			t.Errorf("unexpected response %+v", resp)
		}
		if gotURL != "http://atol.local/v3/test/sell?tokenid=tkn" {
			t.Errorf("URL = %s", gotURL)
		}

		var body struct {
			ExternalID string `json:"external_id"`
			Timestamp  string `json:"timestamp"`
		}
		if err := json.Unmarshal(gotBody, &body); err != nil {
			t.Fatalf("body: %v", err)
		}
		if body.ExternalID != "ext-1" || body.Timestamp != "01.07.2018 09:05:03" {
			t.Errorf("unexpected body %s", gotBody)
		}
	})

	t.Run("API error", func(t *testing.T) {
		mock.OnDo = func(ctx context.Context, method, url string, body []byte) ([]byte, error) {
			return []byte(`{"uuid":"","error":{"code":"10","text":"exists","type":"system"},"status":"fail"}`), nil
		}

		_, err := client.Register(context.Background(), OperationParams{
			GroupCode: "test",
			Operation: OperationSell,
			Receipt:   testReceipt(),
			Token:     "tkn",
		})
		if !errors.Is(err, ErrExternalIDExists) {
			t.Errorf("expected ErrExternalIDExists, got %v", err)
		}
	})

	t.Run("Transport error", func(t *testing.T) {
		mock.OnDo = func(ctx context.Context, method, url string, body []byte) ([]byte, error) {
			return nil, errors.New("connection refused")
		}

		_, err := client.Register(context.Background(), OperationParams{
			GroupCode: "test",
			Operation: OperationSell,
			Receipt:   testReceipt(),
			Token:     "tkn",
		})
		if err == nil || !strings.Contains(err.Error(), "connection refused") {
			t.Errorf("unexpected error %v", err)
		}
		if _, ok := KindOf(err); ok {
			t.Error("transport error classified as API error")
		}
	})

	t.Run("Invalid params", func(t *testing.T) {
		mock.OnDo = func(ctx context.Context, method, url string, body []byte) ([]byte, error) {
			t.Error("transport must not be called")
			return nil, nil
		}
		_, err := client.Register(context.Background(), OperationParams{Operation: OperationSell})
		if !errors.Is(err, ErrEmptyGroupCode) {
			t.Errorf("expected ErrEmptyGroupCode, got %v", err)
		}
	})
}

func TestClientReport(t *testing.T) {
	var gotMethod, gotURL string
	mock := &MockTransport{
		OnDo: func(ctx context.Context, method, url string, body []byte) ([]byte, error) {
			gotMethod, gotURL = method, url
			return []byte(`{"uuid":"u-1","error":null,"status":"done","payload":{"total":3600,"fiscal_document_number":118}}`), nil
		},
	}
	client := NewWithTransport(Config{BaseURL: "http://atol.local/v3/"}, mock)

	resp, err := client.Report(context.Background(), "test", "u-1", "tkn")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if gotMethod != http.MethodGet || gotURL != "http://atol.local/v3/test/report/u-1?tokenid=tkn" {
		t.Errorf("unexpected request %s %s", gotMethod, gotURL)
	}
	if resp.Payload == nil || resp.Payload.FiscalDocumentNumber != 118 {
		t.Errorf("unexpected payload %+v", resp.Payload)
	}
}

func TestClientClose(t *testing.T) {
	closed := false
	client := NewWithTransport(Config{}, &MockTransport{OnClose: func() error {
		closed = true
		return nil
	}})
	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !closed {
		t.Error("transport was not closed")
	}
}

func TestClientMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	responses := []string{
		`{"uuid":"u-1","error":null,"status":"wait"}`,
		`{"uuid":"","error":{"code":"6","text":"","type":""},"status":"fail"}`,
		`{"uuid":"","error":{"code":"6","text":"","type":""},"status":"fail"}`,
	}
	i := 0
	mock := &MockTransport{
		OnDo: func(ctx context.Context, method, url string, body []byte) ([]byte, error) {
			resp := responses[i]
			i++
			return []byte(resp), nil
		},
	}
	client := NewWithTransport(Config{Metrics: metrics}, mock)

	for range responses {
		client.Register(context.Background(), OperationParams{
			GroupCode: "test",
			Operation: OperationSell,
			Receipt:   testReceipt(),
			Token:     "tkn",
		})
	}

	if v := testutil.ToFloat64(metrics.requests.WithLabelValues("sell", resultOK)); v != 1 {
		t.Errorf("ok requests = %v, expected 1", v)
	}
	if v := testutil.ToFloat64(metrics.requests.WithLabelValues("sell", resultAPIError)); v != 2 {
		t.Errorf("api_error requests = %v, expected 2", v)
	}
	if v := testutil.ToFloat64(metrics.apiErrors.WithLabelValues("token_expired")); v != 2 {
		t.Errorf("token_expired errors = %v, expected 2", v)
	}

	if _, err := NewMetrics(reg); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.observe("sell", time.Now(), nil)
}
