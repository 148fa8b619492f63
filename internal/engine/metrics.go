package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests   atomic.Int64
	FallbackSearches atomic.Int64
	UpstreamRequests atomic.Int64
	UpstreamErrors   atomic.Int64
	RecordsDropped   atomic.Int64
	DetailsRequests  atomic.Int64
	DetailsErrors    atomic.Int64
}

func IncrSearchRequests()      { metrics.SearchRequests.Add(1) }
func IncrFallbackSearches()    { metrics.FallbackSearches.Add(1) }
func IncrUpstreamRequests()    { metrics.UpstreamRequests.Add(1) }
func IncrUpstreamErrors()      { metrics.UpstreamErrors.Add(1) }
func IncrRecordsDropped(n int) { metrics.RecordsDropped.Add(int64(n)) }
func IncrDetailsRequests()     { metrics.DetailsRequests.Add(1) }
func IncrDetailsErrors()       { metrics.DetailsErrors.Add(1) }

// GetMetrics returns a snapshot of all counters including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"search_requests":   metrics.SearchRequests.Load(),
		"fallback_searches": metrics.FallbackSearches.Load(),
		"upstream_requests": metrics.UpstreamRequests.Load(),
		"upstream_errors":   metrics.UpstreamErrors.Load(),
		"records_dropped":   metrics.RecordsDropped.Load(),
		"details_requests":  metrics.DetailsRequests.Load(),
		"details_errors":    metrics.DetailsErrors.Load(),
		"cache_hits":        hits,
		"cache_misses":      misses,
	}
}

// FormatMetrics returns counters as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"search_requests", "fallback_searches",
		"upstream_requests", "upstream_errors",
		"records_dropped",
		"details_requests", "details_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
