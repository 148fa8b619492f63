package jobserver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/jobsahayak/go_discovery/internal/engine"
	"github.com/jobsahayak/go_discovery/internal/telemetry"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// JobSearchInput is the inbound contract consumed by the chat-tool caller.
type JobSearchInput struct {
	Search          string   `json:"search,omitempty" jsonschema:"Free-text search: keywords plus optionally a city (e.g. kabaddi coach mumbai)"`
	Location        string   `json:"location,omitempty" jsonschema:"City or region filter (e.g. Mumbai, Pune)"`
	JobType         string   `json:"job_type,omitempty" jsonschema:"Job type filter: full-time, part-time, contract, internship"`
	Limit           int      `json:"limit,omitempty" jsonschema:"Maximum results to return (clamped 5-30, default 10)"`
	Page            int      `json:"page,omitempty" jsonschema:"Upstream page to start from (default 1)"`
	SkillKeywords   []string `json:"skill_keywords,omitempty" jsonschema:"Candidate skill keywords for relevance tagging"`
	GeneralKeywords []string `json:"general_keywords,omitempty" jsonschema:"General profile keywords for relevance tagging"`
	RequestID       string   `json:"request_id,omitempty" jsonschema:"Telemetry request ID; generated when absent"`
	ConversationID  string   `json:"conversation_id,omitempty" jsonschema:"Conversation ID echoed into response metadata"`
}

func registerJobSearch(server *mcp.Server, rec telemetry.Recorder) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_search",
		Description: "Search job listings with automatic query broadening when results are sparse. Splits free text into keyword and location tokens, aggregates upstream pages with deduplication, and tags each result with the matching skill/general keywords. Returns structured JSON (count, total, pages, jobs, metadata).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input JobSearchInput) (*mcp.CallToolResult, engine.SearchResponse, error) {
		requestID := input.RequestID
		if requestID == "" {
			requestID = newRequestID()
		}

		resp := engine.Search(ctx, engine.SearchRequest{
			Search:          input.Search,
			Location:        input.Location,
			JobType:         input.JobType,
			Limit:           input.Limit,
			Page:            input.Page,
			SkillKeywords:   input.SkillKeywords,
			GeneralKeywords: input.GeneralKeywords,
			Telemetry: engine.Telemetry{
				RequestID:      requestID,
				ConversationID: input.ConversationID,
				RequestedAt:    time.Now().UTC().Format(time.RFC3339),
			},
		})

		recordInteresting(ctx, rec, input.Search, resp)
		return nil, resp, nil
	})
}

// recordInteresting persists the event only when the search did something
// worth inspecting later: it broadened, or it came back nearly empty.
func recordInteresting(ctx context.Context, rec telemetry.Recorder, query string, resp engine.SearchResponse) {
	if rec == nil || !resp.Success || resp.Meta == nil {
		return
	}
	kind := ""
	switch {
	case resp.Meta.BroadenedSearch:
		kind = telemetry.KindBroadenedSearch
	case resp.Meta.LowResultCount != nil:
		kind = telemetry.KindLowResultCount
	default:
		return
	}
	ev := telemetry.Event{
		TelemetryID:    resp.Meta.TelemetryID,
		ConversationID: resp.Meta.ConversationID,
		Kind:           kind,
		Query:          query,
		ResultCount:    resp.Count,
		RecordedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := rec.Record(ctx, ev); err != nil {
		slog.Warn("job_search: event record failed", slog.Any("error", err))
	}
}

func newRequestID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "req-unknown"
	}
	return "req-" + hex.EncodeToString(b[:])
}
