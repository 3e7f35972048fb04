package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "weather_search"

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Calls to external providers by operation and outcome.",
	}, []string{"provider", "operation", "outcome"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of calls to external providers.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider", "operation"})

	autocompletePhases = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "autocomplete_phase_total",
		Help:      "Autocomplete source outcomes.",
	}, []string{"phase", "outcome"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by cache and result.",
	}, []string{"cache", "result"})

	historyRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_records_total",
		Help:      "Search history writes by mode and outcome.",
	}, []string{"mode", "outcome"})
)

// ObserveUpstream records the outcome and latency of an upstream call
func ObserveUpstream(provider, operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	upstreamRequests.WithLabelValues(provider, operation, outcome).Inc()
	upstreamLatency.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
}

func ObserveAutocompletePhase(phase, outcome string) {
	autocompletePhases.WithLabelValues(phase, outcome).Inc()
}

// ObserveCache records a hit when hit is true and a miss otherwise
func ObserveCache(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(cache, result).Inc()
}

func ObserveHistoryRecord(mode string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	historyRecords.WithLabelValues(mode, outcome).Inc()
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
