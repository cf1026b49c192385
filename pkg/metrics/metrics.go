// Package metrics provides Prometheus metrics for lakehouse clients.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Namespace is the Prometheus namespace for all client metrics.
	Namespace = "lakehouse_sdk"

	SubsystemHTTP  = "http"
	SubsystemPager = "pager"
)

// Label constants for consistent labeling across metrics.
const (
	LabelCode      = "code"
	LabelMethod    = "method"
	LabelOperation = "operation"
)

// Metrics groups the collectors a client reports to.
type Metrics struct {
	// RequestsTotal counts HTTP round trips by status code and method.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration tracks round trip latency by method.
	RequestDuration *prometheus.HistogramVec

	// InFlight is the number of requests currently on the wire.
	InFlight prometheus.Gauge

	// RetriesTotal counts retry attempts by method.
	RetriesTotal *prometheus.CounterVec

	// PagesTotal counts fetched pages by operation.
	PagesTotal *prometheus.CounterVec

	// PageItemsTotal counts items received through pagers by operation.
	PageItemsTotal *prometheus.CounterVec
}

// New builds the collectors and registers them with reg. A nil reg leaves
// them unregistered, which is what tests and one-off tools usually want.
// Collectors already present in reg are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: SubsystemHTTP,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests sent to the service",
			},
			[]string{LabelCode, LabelMethod},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: SubsystemHTTP,
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{LabelMethod},
		),
		InFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: SubsystemHTTP,
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently in flight",
			},
		),
		RetriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: SubsystemHTTP,
				Name:      "retries_total",
				Help:      "Total number of retried HTTP requests",
			},
			[]string{LabelMethod},
		),
		PagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: SubsystemPager,
				Name:      "pages_total",
				Help:      "Total number of pages fetched by pagers",
			},
			[]string{LabelOperation},
		),
		PageItemsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: SubsystemPager,
				Name:      "items_total",
				Help:      "Total number of items received through pagers",
			},
			[]string{LabelOperation},
		),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	if m.RequestsTotal, err = register(reg, m.RequestsTotal); err != nil {
		return nil, err
	}
	if m.RequestDuration, err = register(reg, m.RequestDuration); err != nil {
		return nil, err
	}
	if m.InFlight, err = register(reg, m.InFlight); err != nil {
		return nil, err
	}
	if m.RetriesTotal, err = register(reg, m.RetriesTotal); err != nil {
		return nil, err
	}
	if m.PagesTotal, err = register(reg, m.PagesTotal); err != nil {
		return nil, err
	}
	if m.PageItemsTotal, err = register(reg, m.PageItemsTotal); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// InstrumentRoundTripper wraps next with request count, latency and in-flight tracking.
func (m *Metrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperInFlight(m.InFlight,
		promhttp.InstrumentRoundTripperCounter(m.RequestsTotal,
			promhttp.InstrumentRoundTripperDuration(m.RequestDuration, next),
		),
	)
}

// ObserveRetry records one retried request.
func (m *Metrics) ObserveRetry(method string) {
	m.RetriesTotal.WithLabelValues(method).Inc()
}

// ObservePage records one page fetched by a pager. Its signature matches
// pagination.PageHook.
func (m *Metrics) ObservePage(operation string, items int, _ bool) {
	m.PagesTotal.WithLabelValues(operation).Inc()
	m.PageItemsTotal.WithLabelValues(operation).Add(float64(items))
}
