package engine

import "strings"

// NormalizedQuery is the result of splitting a free-text search string into
// keyword and location tokens.
type NormalizedQuery struct {
	SearchKeywords   []string
	LocationKeywords []string
}

// NormalizeQuery splits search on whitespace and classifies each lowercased
// token against the gazetteer: recognized location names become location
// keywords, broad terms ("india", "anywhere", ...) are dropped entirely, and
// everything else is a search keyword. An explicit location parameter is
// merged into the location keywords unless it is itself a broad term.
//
// Consumers tolerate repeated tokens, so no dedup happens here. Pure function.
func NormalizeQuery(g Gazetteer, search, location string) NormalizedQuery {
	var nq NormalizedQuery

	for _, token := range strings.Fields(strings.ToLower(search)) {
		switch {
		case g.IsBroad(token):
			// No location filter implied; the token carries no keyword value either.
		case g.IsLocation(token):
			nq.LocationKeywords = append(nq.LocationKeywords, token)
		default:
			nq.SearchKeywords = append(nq.SearchKeywords, token)
		}
	}

	if loc := strings.ToLower(strings.TrimSpace(location)); loc != "" && !g.IsBroad(loc) {
		nq.LocationKeywords = append(nq.LocationKeywords, loc)
	}

	return nq
}
