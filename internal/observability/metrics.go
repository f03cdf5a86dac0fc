package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	DocumentsExtractedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talent_documents_extracted_total",
			Help: "Documents processed by the extractor by detected format and outcome",
		},
		[]string{"format", "outcome"},
	)

	StageOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talent_extraction_stage_outcomes_total",
			Help: "Extraction stage outcomes (ok, recovered, empty)",
		},
		[]string{"stage", "outcome"},
	)

	StrategyWinsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talent_extraction_strategy_wins_total",
			Help: "Which named strategy produced the accepted value for a stage",
		},
		[]string{"stage", "strategy"},
	)

	OracleCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talent_oracle_calls_total",
			Help: "Oracle calls by model tier and outcome",
		},
		[]string{"tier", "outcome"},
	)

	MatchesReturnedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talent_matches_returned_total",
			Help: "Match results returned after the score floor and limit",
		},
		[]string{"kind"},
	)

	MatchScoreHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "talent_match_score",
			Help:    "Distribution of returned match scores",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
		[]string{"kind"},
	)

	InterviewSessionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talent_interview_sessions_total",
			Help: "Interview sessions by status reached",
		},
		[]string{"status"},
	)
)

var registerOnce sync.Once

// InitMetrics registers every collector with the default registry. Safe to call repeatedly.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			DocumentsExtractedTotal,
			StageOutcomesTotal,
			StrategyWinsTotal,
			OracleCallsTotal,
			MatchesReturnedTotal,
			MatchScoreHistogram,
			InterviewSessionsTotal,
		)
	})
}

// WriteMetrics dumps the default registry in the node_exporter textfile format
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
