// Package metrics collects per-run Prometheus metrics and writes them in the
// node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/japaniel/lexisent/pkg/lexicon"
	"github.com/japaniel/lexisent/pkg/sentiment"
)

// Metrics holds the collectors of one run on a private registry.
type Metrics struct {
	DocumentsScored *prometheus.CounterVec
	LexiconTokens   *prometheus.GaugeVec
	Scores          prometheus.Histogram
	MatchedTokens   *prometheus.CounterVec
	RunDuration     prometheus.Gauge
	LastSuccess     prometheus.Gauge

	registry *prometheus.Registry
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		DocumentsScored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexisent_documents_scored_total",
				Help: "Documents scored, by input source.",
			},
			[]string{"source"},
		),
		LexiconTokens: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lexisent_lexicon_tokens",
				Help: "Distinct lexicon tokens, by polarity.",
			},
			[]string{"polarity"},
		),
		Scores: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lexisent_score",
				Help:    "Distribution of Janis-Fadner imbalance scores.",
				Buckets: prometheus.LinearBuckets(-1, 0.25, 9),
			},
		),
		MatchedTokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexisent_matched_tokens_total",
				Help: "Lexicon tokens found in documents, by polarity.",
			},
			[]string{"polarity"},
		),
		RunDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "lexisent_run_duration_seconds",
				Help: "Wall time of the last run.",
			},
		),
		LastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "lexisent_last_success_timestamp_seconds",
				Help: "Unix time the last successful run finished.",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.DocumentsScored,
		m.LexiconTokens,
		m.Scores,
		m.MatchedTokens,
		m.RunDuration,
		m.LastSuccess,
	)
	return m
}

// ObserveLexicon records the lexicon size.
func (m *Metrics) ObserveLexicon(lex *lexicon.Lexicon) {
	m.LexiconTokens.WithLabelValues("positive").Set(float64(len(lex.Positive)))
	m.LexiconTokens.WithLabelValues("negative").Set(float64(len(lex.Negative)))
}

// ObserveResults records scored documents.
func (m *Metrics) ObserveResults(results []sentiment.Result) {
	for _, r := range results {
		m.DocumentsScored.WithLabelValues(r.Source).Inc()
		m.MatchedTokens.WithLabelValues("positive").Add(float64(r.Positive))
		m.MatchedTokens.WithLabelValues("negative").Add(float64(r.Negative))
		m.Scores.Observe(r.Score)
	}
}

// Finish records the run duration and marks the run successful at end.
func (m *Metrics) Finish(duration time.Duration, end time.Time) {
	m.RunDuration.Set(duration.Seconds())
	m.LastSuccess.Set(float64(end.Unix()))
}

// WriteTextfile atomically writes the gathered metrics to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
