// Package metrics provides Prometheus metrics for the analysis pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the pipeline.
type Metrics struct {
	// Document lifecycle metrics
	DocumentsSubmittedTotal prometheus.Counter
	DocumentsCompletedTotal *prometheus.CounterVec
	DocumentsInFlight       prometheus.Gauge
	StageDuration           *prometheus.HistogramVec

	// Clause analysis metrics
	ClauseJudgmentsTotal   *prometheus.CounterVec
	ProviderFalloversTotal prometheus.Counter
	DegradedClausesTotal   prometheus.Counter

	// Embedding index metrics
	EmbeddingWritesTotal *prometheus.CounterVec

	// RAG metrics
	RAGQueriesTotal *prometheus.CounterVec
}

// New creates and registers all pipeline metrics with the given
// registerer. Pass prometheus.DefaultRegisterer outside tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{}

	m.DocumentsSubmittedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "clauseline_documents_submitted_total",
			Help: "Total number of documents submitted for analysis",
		},
	)

	m.DocumentsCompletedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clauseline_documents_finished_total",
			Help: "Total number of documents that reached a terminal state",
		},
		[]string{"state"},
	)

	m.DocumentsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "clauseline_documents_in_flight",
			Help: "Number of documents currently being processed",
		},
	)

	m.StageDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clauseline_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"stage"},
	)

	m.ClauseJudgmentsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clauseline_clause_judgments_total",
			Help: "Total number of clause judgments by provider and outcome",
		},
		[]string{"provider", "status"},
	)

	m.ProviderFalloversTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "clauseline_provider_fallovers_total",
			Help: "Total number of falls to a secondary judge provider",
		},
	)

	m.DegradedClausesTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "clauseline_degraded_clauses_total",
			Help: "Total number of clauses that received a placeholder judgment",
		},
	)

	m.EmbeddingWritesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clauseline_embedding_writes_total",
			Help: "Total number of clause index writes by outcome",
		},
		[]string{"status"},
	)

	m.RAGQueriesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clauseline_rag_queries_total",
			Help: "Total number of RAG queries by outcome",
		},
		[]string{"status"},
	)

	return m
}

// NewUnregistered creates metrics backed by a private registry. Used
// in tests and as a fallback when no registerer is supplied.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObserveStage records the duration of one pipeline stage.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// RecordJudgment records a clause judgment outcome for a provider.
func (m *Metrics) RecordJudgment(provider, status string) {
	m.ClauseJudgmentsTotal.WithLabelValues(provider, status).Inc()
}
