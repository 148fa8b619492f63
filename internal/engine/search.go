package engine

import (
	"context"
	"log/slog"
	"strings"
)

// Limit clamp bounds for one discovery call.
const (
	minLimit     = 5
	maxLimit     = 30
	defaultLimit = 10
)

const degradedMessage = "The job search service is temporarily unavailable. " +
	"Please try again in a moment — a broader search term can also help."

// Search turns a free-text request into a ranked, deduplicated page of
// listings. It is stateless: every call owns its own collector and dedup set,
// and no failure escapes as an error — upstream trouble degrades into a
// success=false response instead.
func Search(ctx context.Context, req SearchRequest) SearchResponse {
	IncrSearchRequests()

	limit := clampLimit(req.Limit)
	page := req.Page
	if page < 1 {
		page = 1
	}

	nq := NormalizeQuery(cfg.Gazetteer, req.Search, req.Location)
	slog.Info("search: request",
		slog.String("query", req.Search),
		slog.Int("limit", limit),
		slog.Int("page", page),
		slog.Any("keywords", nq.SearchKeywords),
		slog.Any("locations", nq.LocationKeywords))

	col := newCollector()
	broadened := false

	primary := pageQuery{PerPage: cfg.UpstreamPageSize, Search: strings.Join(nq.SearchKeywords, " ")}
	primaryFilter := FilterContext{
		LocationKeywords: nq.LocationKeywords,
		JobType:          req.JobType,
		SearchKeywords:   nq.SearchKeywords,
	}
	if err := col.runPhase(ctx, "primary", primary, primaryFilter, page, limit); err != nil {
		slog.Warn("search: primary phase failed", slog.Any("error", err))
		return degradedResponse(req, nq, limit, page)
	}

	// Broaden only when a keyword filter was actually constraining results.
	if len(nq.SearchKeywords) > 0 && len(col.collected) < limit {
		broadened = true
		IncrFallbackSearches()
		fallback := pageQuery{PerPage: cfg.UpstreamPageSize}
		fallbackFilter := FilterContext{
			LocationKeywords: nq.LocationKeywords,
			JobType:          req.JobType,
		}
		if err := col.runPhase(ctx, "fallback", fallback, fallbackFilter, 1, limit); err != nil {
			slog.Warn("search: fallback phase failed", slog.Any("error", err))
			return degradedResponse(req, nq, limit, page)
		}
	}

	jobs := col.collected
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	if jobs == nil {
		jobs = []Listing{}
	}

	AnnotateRelevance(jobs, req.SkillKeywords, req.GeneralKeywords)

	resp := SearchResponse{
		Success:     true,
		Count:       len(jobs),
		Total:       col.total,
		TotalPages:  col.totalPages,
		CurrentPage: page,
		Jobs:        jobs,
		Meta:        buildMeta(req, nq, limit, broadened),
	}

	if resp.Count == 0 {
		resp.Message = "No matching jobs were found."
		if len(nq.SearchKeywords) > 0 {
			resp.Tips = append(resp.Tips, "Try broader or fewer search terms.")
		}
		if len(nq.LocationKeywords) > 0 {
			resp.Tips = append(resp.Tips, "Try removing the location filter to search everywhere.")
		}
	}
	if resp.Count < cfg.LowResultThreshold {
		n := resp.Count
		resp.Meta.LowResultCount = &n
	}

	slog.Info("search: complete",
		slog.Int("count", resp.Count),
		slog.Int("total", resp.Total),
		slog.Bool("broadened", broadened))
	return resp
}

func clampLimit(limit int) int {
	switch {
	case limit == 0:
		return defaultLimit
	case limit < minLimit:
		return minLimit
	case limit > maxLimit:
		return maxLimit
	}
	return limit
}

func buildMeta(req SearchRequest, nq NormalizedQuery, limit int, broadened bool) *ResponseMeta {
	searchKW := nq.SearchKeywords
	if searchKW == nil {
		searchKW = []string{}
	}
	return &ResponseMeta{
		TelemetryID:     req.Telemetry.RequestID,
		ConversationID:  req.Telemetry.ConversationID,
		BroadenedSearch: broadened,
		RequestedCount:  limit,
		SearchKeywords:  searchKW,
		SkillKeywords:   orEmpty(req.SkillKeywords),
		GeneralKeywords: orEmpty(req.GeneralKeywords),
	}
}

// degradedResponse converts an upstream failure into an inspectable
// success=false payload; nothing is re-thrown to the caller.
func degradedResponse(req SearchRequest, nq NormalizedQuery, limit, page int) SearchResponse {
	return SearchResponse{
		Success:     false,
		Count:       0,
		CurrentPage: page,
		Jobs:        []Listing{},
		Message:     degradedMessage,
		Meta:        buildMeta(req, nq, limit, false),
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
