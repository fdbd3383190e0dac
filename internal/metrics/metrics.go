package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readease_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// LLMCallDuration tracks provider latency per text operation.
	LLMCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "readease_llm_call_duration_seconds",
		Help:    "Time spent waiting on the LLM provider.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"operation", "provider", "outcome"})

	// InputChars tracks the distribution of input text lengths.
	InputChars = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "readease_input_chars",
		Help:    "Number of characters in text sent to the LLM provider.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 20000},
	}, []string{"operation"})

	// SuggestionFallbacks counts suggestion requests answered with the default list.
	SuggestionFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readease_suggestion_fallbacks_total",
		Help: "Suggestion requests that fell back to the default list.",
	}, []string{"reason"})

	// PreferenceSaves counts preference upserts per storage backend.
	PreferenceSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readease_preference_saves_total",
		Help: "Preference upserts by backend and outcome.",
	}, []string{"backend", "outcome"})
)

// Outcome labels shared by the counters above.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
