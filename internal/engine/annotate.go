package engine

import "strings"

// AnnotateRelevance tags each listing with the subset of skill and general
// keywords found in its searchable text. Matches keep the caller's original
// casing; duplicates are collapsed on the lowercased form. Listings with no
// match in either list keep a nil Relevance so "no scoring data" stays
// distinct from "scored but zero matches". Order is never changed.
func AnnotateRelevance(listings []Listing, skillKeywords, generalKeywords []string) {
	if len(skillKeywords) == 0 && len(generalKeywords) == 0 {
		return
	}
	for i := range listings {
		l := &listings[i]
		haystack := strings.ToLower(strings.Join([]string{
			l.Title, l.Description, l.Employer, l.Category,
			l.Qualification, l.Experience, l.JobType, l.Location,
		}, " "))

		skill := matchKeywords(haystack, skillKeywords)
		general := matchKeywords(haystack, generalKeywords)
		if len(skill) == 0 && len(general) == 0 {
			continue
		}
		l.Relevance = &Relevance{SkillMatches: skill, GeneralMatches: general}
	}
}

// matchKeywords collects the original-cased keywords whose lowercased form
// appears in haystack, counting each normalized form once.
func matchKeywords(haystack string, keywords []string) []string {
	matches := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		norm := strings.ToLower(strings.TrimSpace(kw))
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		if strings.Contains(haystack, norm) {
			matches = append(matches, kw)
		}
	}
	return matches
}
