package jobserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobsahayak/go_discovery/internal/telemetry"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchEventsInput limits how many recorded events to return.
type SearchEventsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum events to return, newest first (default 50)"`
}

// SearchEventsOutput lists the recorded search events.
type SearchEventsOutput struct {
	Events []telemetry.Event `json:"events"`
	Total  int               `json:"total"`
}

func registerSearchEvents(server *mcp.Server, rec telemetry.Recorder) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_events",
		Description: "List recorded search telemetry events (broadened searches and low-result searches), newest first. Useful for spotting queries the job catalog serves poorly.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SearchEventsInput) (*mcp.CallToolResult, SearchEventsOutput, error) {
		if rec == nil {
			return nil, SearchEventsOutput{}, errors.New("event recording is disabled")
		}
		events, err := rec.List(ctx, input.Limit)
		if err != nil {
			return nil, SearchEventsOutput{}, fmt.Errorf("list events: %w", err)
		}
		if events == nil {
			events = []telemetry.Event{}
		}
		return nil, SearchEventsOutput{Events: events, Total: len(events)}, nil
	})
}
