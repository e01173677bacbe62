package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordtrainer_http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wordtrainer_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// AI generation metrics
	GenerateRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordtrainer_generate_requests_total",
		Help: "Total generation calls issued to the AI backend",
	})

	GenerateErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordtrainer_generate_errors_total",
		Help: "Generation failures by reason (request, parse, timeout)",
	}, []string{"reason"})

	GenerateLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordtrainer_generate_duration_seconds",
		Help:    "Wall-clock duration of whole generation attempts",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 180},
	})

	// Suggestion pipeline metrics
	SuggestionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordtrainer_suggestion_cache_hits_total",
		Help: "Suggestion requests served from a non-empty buffer",
	})

	SuggestionCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordtrainer_suggestion_cache_misses_total",
		Help: "Suggestion requests that found no usable buffered pair",
	})

	SuggestionsServedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordtrainer_suggestions_served_total",
		Help: "Suggestion responses by kind and outcome (success, busy, unavailable, exhausted)",
	}, []string{"kind", "outcome"})

	// Vocabulary gauges
	VocabularyWordsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wordtrainer_vocabulary_words_total",
		Help: "Total words stored across all users",
	})

	UsersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wordtrainer_users_total",
		Help: "Registered users",
	})
)
