// Package metrics defines the Prometheus metrics exported by logbook.
// All collectors live on a private registry so tests can build as many
// instances as they like.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentstation/logbook/pkg/catalog"
)

const namespace = "logbook"

// Load outcomes used as the status label of CatalogLoads.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	registry *prometheus.Registry

	CatalogRecords      prometheus.Gauge
	CatalogGeneration   prometheus.Gauge
	CatalogLoads        *prometheus.CounterVec
	CatalogLoadDuration prometheus.Histogram
	MalformedLines      prometheus.Counter
	UnreadableFiles     prometheus.Counter

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the metrics and registers them, together with the Go runtime
// and process collectors, on a new registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		CatalogRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "records",
			Help:      "Number of records in the published catalog snapshot.",
		}),
		CatalogGeneration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "generation",
			Help:      "Generation number of the published catalog snapshot.",
		}),
		CatalogLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "loads_total",
			Help:      "Total number of catalog loads by status.",
		}, []string{"status"}), // status: ok, error
		CatalogLoadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "load_duration_seconds",
			Help:      "Duration of successful catalog loads.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		MalformedLines: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "malformed_lines_total",
			Help:      "Total number of malformed lines skipped across loads.",
		}),
		UnreadableFiles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "unreadable_files_total",
			Help:      "Total number of files skipped because they could not be read.",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Registry returns the registry holding all collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Attach records every load of c.
func (m *Metrics) Attach(c *catalog.Catalog) {
	m.CatalogRecords.Set(float64(c.Len()))
	m.CatalogGeneration.Set(float64(c.Generation()))
	c.OnReload(m.ObserveLoad)
	c.OnLoadFailed(m.ObserveLoadFailure)
}

// ObserveLoad records a successful load.
func (m *Metrics) ObserveLoad(report *catalog.LoadReport) {
	m.CatalogLoads.WithLabelValues(StatusOK).Inc()
	m.CatalogLoadDuration.Observe(report.Duration.Seconds())
	m.CatalogRecords.Set(float64(report.Records))
	m.CatalogGeneration.Set(float64(report.Generation))
	m.MalformedLines.Add(float64(report.MalformedLines))
	m.UnreadableFiles.Add(float64(report.FilesFailed))
}

// ObserveLoadFailure records an aborted load.
func (m *Metrics) ObserveLoadFailure(error) {
	m.CatalogLoads.WithLabelValues(StatusError).Inc()
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
