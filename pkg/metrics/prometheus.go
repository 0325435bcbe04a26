// Package metrics provides Prometheus metrics for lfgmenu runs.
//
// lfgmenu is a one-shot batch job, so nothing is served over HTTP. When a
// textfile path is configured the registry is written in the node_exporter
// textfile collector format at the end of each run.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for a generator run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Pipeline throughput
	eventsLoaded       *prometheus.CounterVec
	menusRendered      *prometheus.CounterVec
	tipsFormatted      *prometheus.CounterVec
	duplicateMenuNames prometheus.Counter

	// Stage timings and outcome
	stageDuration      *prometheus.HistogramVec
	runFailures        *prometheus.CounterVec
	outputBytes        prometheus.Gauge
	lastSuccessSeconds prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lfgmenu",
		subsystem:        "generator",
		histogramBuckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.eventsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_loaded_total",
		Help:        "Events decoded from input collections",
		ConstLabels: m.constLabels,
	}, []string{"collection"})

	m.menusRendered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "menus_rendered_total",
		Help:        "Templates rendered, by template name",
		ConstLabels: m.constLabels,
	}, []string{"template"})

	m.tipsFormatted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tips_formatted_total",
		Help:        "Tips turned into macro entries, by category (empty for the flat scheme)",
		ConstLabels: m.constLabels,
	}, []string{"category"})

	m.duplicateMenuNames = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duplicate_menu_names_total",
		Help:        "Events sharing a menu name with an earlier event in the same block",
		ConstLabels: m.constLabels,
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_duration_seconds",
		Help:        "Wall time spent in each pipeline stage",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"stage"})

	m.runFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_failures_total",
		Help:        "Runs aborted, by failing stage",
		ConstLabels: m.constLabels,
	}, []string{"stage"})

	m.outputBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "output_bytes",
		Help:        "Size of the last generated menu document",
		ConstLabels: m.constLabels,
	})

	m.lastSuccessSeconds = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_success_timestamp_seconds",
		Help:        "Unix time of the last successful run",
		ConstLabels: m.constLabels,
	})
}

// RecordEventsLoaded adds n decoded events for a collection.
func RecordEventsLoaded(collection string, n int) {
	globalManager.eventsLoaded.WithLabelValues(collection).Add(float64(n))
}

// RecordMenuRendered counts one successful render of a template.
func RecordMenuRendered(template string) {
	globalManager.menusRendered.WithLabelValues(template).Inc()
}

// RecordTipsFormatted adds n formatted tips for a category.
func RecordTipsFormatted(category string, n int) {
	globalManager.tipsFormatted.WithLabelValues(category).Add(float64(n))
}

// RecordDuplicateMenuName counts one repeated menu name.
func RecordDuplicateMenuName() {
	globalManager.duplicateMenuNames.Inc()
}

// ObserveStage records how long a stage took.
func ObserveStage(stage string, d time.Duration) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordRunFailure counts an aborted run.
func RecordRunFailure(stage string) {
	globalManager.runFailures.WithLabelValues(stage).Inc()
}

// RecordSuccess records the output size and completion time of a run.
func RecordSuccess(outputBytes int, at time.Time) {
	globalManager.outputBytes.Set(float64(outputBytes))
	globalManager.lastSuccessSeconds.Set(float64(at.Unix()))
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the global registry to path in text exposition format.
// The file is written atomically so the textfile collector never reads a
// partial file.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
