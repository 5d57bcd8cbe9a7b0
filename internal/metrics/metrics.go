// Package metrics provides the centralized Prometheus metrics registry
// for the injury impact model.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evanchechak/basketball-injury-model/internal/models"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "injury_model",
		Name:      "analyses_total",
		Help:      "Total number of teammate impact analyses run",
	}, []string{"stat"})
	OpportunitiesFoundTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "injury_model",
		Name:      "opportunities_found_total",
		Help:      "Total number of opportunities meeting the edge threshold",
	}, []string{"side"})
	TeammatesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "injury_model",
		Name:      "teammates_skipped_total",
		Help:      "Total number of teammates skipped during scans",
	}, []string{"reason"})
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "injury_model",
		Name:      "provider_requests_total",
		Help:      "Total number of requests to the stats provider",
	}, []string{"endpoint", "outcome"})
	BetsRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "injury_model",
		Name:      "bets_recorded_total",
		Help:      "Total number of bets entered into the tracker",
	})
	BetsSettledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "injury_model",
		Name:      "bets_settled_total",
		Help:      "Total number of bets settled",
	}, []string{"status"})
)

// Gauge metrics
var (
	PendingBets = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "injury_model",
		Name:      "pending_bets",
		Help:      "Number of bets awaiting settlement",
	})
	TrackerROIPercent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "injury_model",
		Name:      "tracker_roi_percent",
		Help:      "Return on investment across settled bets, as a percentage",
	})
)

// Histogram metrics
var (
	ScanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "injury_model",
		Name:      "scan_duration_seconds",
		Help:      "Duration of opportunity scans in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "injury_model",
		Name:      "provider_request_duration_seconds",
		Help:      "Latency of stats provider requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(AnalysesTotal)
		registry.MustRegister(OpportunitiesFoundTotal)
		registry.MustRegister(TeammatesSkippedTotal)
		registry.MustRegister(ProviderRequestsTotal)
		registry.MustRegister(BetsRecordedTotal)
		registry.MustRegister(BetsSettledTotal)

		registry.MustRegister(PendingBets)
		registry.MustRegister(TrackerROIPercent)

		registry.MustRegister(ScanDuration)
		registry.MustRegister(ProviderRequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// Recorder adapts the registry to the analysis package's recorder
// interface.
type Recorder struct{}

// RecordAnalysis records one teammate impact analysis.
func (Recorder) RecordAnalysis(stat models.StatCategory) {
	AnalysesTotal.WithLabelValues(string(stat)).Inc()
}

// RecordOpportunity records an opportunity meeting the edge threshold.
func (Recorder) RecordOpportunity(side models.BetSide) {
	OpportunitiesFoundTotal.WithLabelValues(string(side)).Inc()
}

// RecordSkip records a teammate a scan could not evaluate.
func (Recorder) RecordSkip(reason models.SkipReason) {
	TeammatesSkippedTotal.WithLabelValues(string(reason)).Inc()
}

// RecordProviderRequest records one stats provider request.
func RecordProviderRequest(endpoint, outcome string, durationSeconds float64) {
	ProviderRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	ProviderRequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordBetRecorded records a bet entering the tracker.
func RecordBetRecorded() {
	BetsRecordedTotal.Inc()
}

// RecordBetSettled records a bet settlement event.
func RecordBetSettled(status models.BetStatus) {
	BetsSettledTotal.WithLabelValues(string(status)).Inc()
}

// UpdatePendingBets updates the pending bets gauge.
func UpdatePendingBets(count float64) {
	PendingBets.Set(count)
}

// UpdateTrackerROI updates the tracker ROI gauge.
func UpdateTrackerROI(percent float64) {
	TrackerROIPercent.Set(percent)
}

// RecordScanDuration records opportunity scan duration.
func RecordScanDuration(durationSeconds float64) {
	ScanDuration.Observe(durationSeconds)
}
