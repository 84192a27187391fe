package atol

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — метрики клиента. Нулевой указатель допустим и ничего не считает.
type Metrics struct {
	requests  *prometheus.CounterVec
	apiErrors *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics создает и регистрирует метрики в reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atol_requests_total",
			Help: "Requests sent to ATOL Online by endpoint and result.",
		}, []string{"endpoint", "result"}),
		apiErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atol_api_errors_total",
			Help: "Errors returned by ATOL Online by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atol_request_duration_seconds",
			Help:    "Duration of requests to ATOL Online.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.apiErrors, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Результаты запроса для метки result
const (
	resultOK       = "ok"
	resultAPIError = "api_error"
	resultFailed   = "failed"
)

func (m *Metrics) observe(endpoint string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())

	result := resultOK
	var apiErr *APIError
	switch {
	case err == nil:
	case errors.As(err, &apiErr):
		result = resultAPIError
		m.apiErrors.WithLabelValues(apiErr.Kind.String()).Inc()
	default:
		result = resultFailed
	}
	m.requests.WithLabelValues(endpoint, result).Inc()
}
