package engine

import (
	"math"
	"strings"
)

// FilterContext holds the client-side filters for one aggregation phase.
// Empty filters match everything; all supplied filters must pass.
type FilterContext struct {
	LocationKeywords []string
	JobType          string
	SearchKeywords   []string
}

// Keep reports whether the listing passes every supplied filter.
func (fc FilterContext) Keep(l Listing) bool {
	return fc.matchesLocation(l) && fc.matchesJobType(l) && fc.matchesKeywords(l)
}

// matchesLocation keeps the listing when its flattened location contains ANY
// of the location keywords (OR semantics, case-insensitive substring).
func (fc FilterContext) matchesLocation(l Listing) bool {
	if len(fc.LocationKeywords) == 0 {
		return true
	}
	loc := strings.ToLower(l.Location)
	for _, kw := range fc.LocationKeywords {
		if strings.Contains(loc, kw) {
			return true
		}
	}
	return false
}

func (fc FilterContext) matchesJobType(l Listing) bool {
	if fc.JobType == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.JobType), strings.ToLower(fc.JobType))
}

// matchesKeywords requires majority keyword coverage rather than a literal
// AND, so multi-word phrases that only partially appear still match. The
// coverage fraction is Config.KeywordCoverage.
func (fc FilterContext) matchesKeywords(l Listing) bool {
	if len(fc.SearchKeywords) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		l.Title, l.Description, l.Employer, l.Category, l.Qualification,
	}, " "))

	found := 0
	seen := make(map[string]bool, len(fc.SearchKeywords))
	for _, kw := range fc.SearchKeywords {
		if seen[kw] {
			continue
		}
		seen[kw] = true
		if strings.Contains(haystack, kw) {
			found++
		}
	}

	need := int(math.Ceil(cfg.KeywordCoverage * float64(len(seen))))
	return found >= need
}
