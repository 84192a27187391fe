package atol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/html/charset"
)

// maxResponseSize ограничивает размер читаемого ответа
const maxResponseSize = 4 << 20

// Transport определяет интерфейс транспорта для связи с API
type Transport interface {
	// Do выполняет запрос и возвращает тело ответа в UTF-8
	Do(ctx context.Context, method, url string, body []byte) ([]byte, error)

	// Close освобождает ресурсы транспорта
	Close() error
}

// HTTPTransport реализует транспорт на основе net/http
type HTTPTransport struct {
	client *http.Client
	logger func(string)
}

// NewHTTPTransport создает HTTP-транспорт с трассировкой OpenTelemetry
func NewHTTPTransport(timeout time.Duration, logger func(string)) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// NewHTTPTransportWithClient использует готовый http.Client
func NewHTTPTransportWithClient(client *http.Client, logger func(string)) *HTTPTransport {
	return &HTTPTransport{client: client, logger: logger}
}

func (t *HTTPTransport) logf(format string, args ...interface{}) {
	if t.logger != nil {
		t.logger(fmt.Sprintf(format, args...))
	}
}

// Do отправляет запрос. Ответ с кодом не 2xx возвращается без ошибки,
// только если это ответ API с описанием ошибки (поле error или code).
func (t *HTTPTransport) Do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	t.logf("%s %s (%d bytes)", method, redactToken(url), len(body))

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	t.logf("Response %d, %d bytes", resp.StatusCode, len(data))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if isAPIError(data) {
			return data, nil
		}
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, snippet(data))
	}

	return data, nil
}

// Close закрывает простаивающие соединения
func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

// readBody читает тело и перекодирует его в UTF-8, если сервер указал другую кодировку
func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = io.LimitReader(resp.Body, maxResponseSize)

	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil {
		if label := params["charset"]; label != "" && !strings.EqualFold(label, "utf-8") {
			cr, err := charset.NewReaderLabel(label, r)
			if err != nil {
				return nil, err
			}
			r = cr
		}
	}

	return io.ReadAll(r)
}

// isAPIError сообщает, что тело — JSON-объект API с непустым error или code.
// Ответы прокси и балансировщиков такого объекта не содержат.
func isAPIError(data []byte) bool {
	var envelope struct {
		Error json.RawMessage `json:"error"`
		Code  json.RawMessage `json:"code"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return false
	}
	present := func(raw json.RawMessage) bool {
		return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
	}
	return present(envelope.Error) || present(envelope.Code)
}

func redactToken(u string) string {
	if i := strings.Index(u, "tokenid="); i >= 0 {
		return u[:i] + "tokenid=***"
	}
	return u
}

func snippet(data []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(data))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
