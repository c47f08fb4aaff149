package service

import (
	"strings"

	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "procwarden"

// MetricCollector exports scanner activity. Every series carries the host's machine id.
type MetricCollector struct {
	cycles        prometheus.Counter
	results       *prometheus.CounterVec
	enumFailures  prometheus.Counter
	storeFailures prometheus.Counter
	cycleDuration prometheus.Histogram
	running       prometheus.Gauge
}

func NewMetricCollector(machineID string) *MetricCollector {
	labels := prometheus.Labels{"machine_id": strings.TrimSpace(machineID)}
	c := &MetricCollector{
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricNamespace,
			Name:        "cycles_total",
			Help:        "Completed scan cycles.",
			ConstLabels: labels,
		}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   metricNamespace,
			Name:        "scan_results_total",
			Help:        "Evaluated processes by scan result.",
			ConstLabels: labels,
		}, []string{"result"}),
		enumFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricNamespace,
			Name:        "enumeration_failures_total",
			Help:        "Cycles that could not snapshot the process table.",
			ConstLabels: labels,
		}),
		storeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricNamespace,
			Name:        "detection_store_failures_total",
			Help:        "Cycles whose detections could not be written to the audit store.",
			ConstLabels: labels,
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   metricNamespace,
			Name:        "cycle_duration_seconds",
			Help:        "Wall time of one scan cycle.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricNamespace,
			Name:        "scanner_running",
			Help:        "1 while the background scan loop is running.",
			ConstLabels: labels,
		}),
	}
	for _, r := range domain.AllScanResults {
		c.results.WithLabelValues(r.String())
	}
	return c
}

func (c *MetricCollector) Describe(ch chan<- *prometheus.Desc) {
	c.cycles.Describe(ch)
	c.results.Describe(ch)
	c.enumFailures.Describe(ch)
	c.storeFailures.Describe(ch)
	c.cycleDuration.Describe(ch)
	c.running.Describe(ch)
}

func (c *MetricCollector) Collect(ch chan<- prometheus.Metric) {
	c.cycles.Collect(ch)
	c.results.Collect(ch)
	c.enumFailures.Collect(ch)
	c.storeFailures.Collect(ch)
	c.cycleDuration.Collect(ch)
	c.running.Collect(ch)
}

func (c *MetricCollector) ObserveResult(r domain.ScanResult) {
	c.results.WithLabelValues(r.String()).Inc()
}

func (c *MetricCollector) ObserveCycle(report *domain.CycleReport) {
	c.cycles.Inc()
	c.cycleDuration.Observe(report.Duration().Seconds())
}

func (c *MetricCollector) ObserveEnumerationFailure() {
	c.enumFailures.Inc()
}

func (c *MetricCollector) ObserveStoreFailure() {
	c.storeFailures.Inc()
}

func (c *MetricCollector) SetRunning(running bool) {
	if running {
		c.running.Set(1)
		return
	}
	c.running.Set(0)
}
