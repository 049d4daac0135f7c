package syncrun

import (
	"net/http"
	"strconv"
	"time"

	"github.com/darkkaiser/catalog-sync/internal/catalog/reconcile"
	"github.com/darkkaiser/catalog-sync/internal/catalog/shopify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "catalog_sync"

// Metrics 동기화 실행과 원격 API 호출에 대한 Prometheus 지표입니다.
//
// 전역 레지스트리 대신 자체 레지스트리를 사용하므로 테스트마다 독립적으로 생성할 수 있습니다.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal        *prometheus.CounterVec
	productsTotal    *prometheus.CounterVec
	runDuration      prometheus.Histogram
	lastRunTimestamp prometheus.Gauge
	inProgress       prometheus.Gauge

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
}

var _ shopify.Observer = (*Metrics)(nil)

// NewMetrics 지표를 생성하고 자체 레지스트리에 등록합니다.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Number of sync runs by result.",
		}, []string{"result"}),
		productsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "products_total",
			Help:      "Number of reconciled products by outcome.",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of sync runs.",
			Buckets:   []float64{10, 30, 60, 120, 300, 600, 1200, 1800, 3600},
		}),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last sync run finished.",
		}),
		inProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "run_in_progress",
			Help:      "1 while a sync run is in progress.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "remote",
			Name:      "requests_total",
			Help:      "Physical remote API calls by method and status code.",
		}, []string{"method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "remote",
			Name:      "request_duration_seconds",
			Help:      "Latency of physical remote API calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		retriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "remote",
			Name:      "retries_total",
			Help:      "Remote API retries by reason.",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.runsTotal,
		m.productsTotal,
		m.runDuration,
		m.lastRunTimestamp,
		m.inProgress,
		m.requestsTotal,
		m.requestDuration,
		m.retriesTotal,
	)

	return m
}

// Handler /metrics 응답 핸들러를 반환합니다.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method string, statusCode int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRetry(reason string) {
	m.retriesTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) setInProgress(running bool) {
	if running {
		m.inProgress.Set(1)
	} else {
		m.inProgress.Set(0)
	}
}

func (m *Metrics) observeRun(r *Report) {
	result := "completed"
	if r.Aborted {
		result = "aborted"
	}
	m.runsTotal.WithLabelValues(result).Inc()

	for outcome, n := range map[reconcile.Outcome]int{
		reconcile.Created: r.Created,
		reconcile.Updated: r.Updated,
		reconcile.Skipped: r.Skipped,
		reconcile.Failed:  r.Failed,
	} {
		m.productsTotal.WithLabelValues(outcome.String()).Add(float64(n))
	}

	m.runDuration.Observe(r.Duration().Seconds())
	m.lastRunTimestamp.Set(float64(r.FinishedAt.Unix()))
}
