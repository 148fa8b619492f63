package jobserver

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jobsahayak/go_discovery/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// JobDetailsInput asks for the full posting text behind one listing.
type JobDetailsInput struct {
	URL string `json:"url" jsonschema:"The listing's fullDescriptionUrl from a job_search result"`
}

// JobDetailsOutput carries the posting body as markdown.
type JobDetailsOutput struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

func registerJobDetails(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_details",
		Description: "Fetch the full, untruncated description for a single job listing by its fullDescriptionUrl. Returns the posting body converted to markdown. Results are cached briefly.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input JobDetailsInput) (*mcp.CallToolResult, JobDetailsOutput, error) {
		if input.URL == "" {
			return nil, JobDetailsOutput{}, errors.New("url is required")
		}
		u, err := url.Parse(input.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return nil, JobDetailsOutput{}, fmt.Errorf("invalid url %q", input.URL)
		}

		md, err := engine.FetchJobDetails(ctx, input.URL)
		if err != nil {
			return nil, JobDetailsOutput{}, fmt.Errorf("fetch details: %w", err)
		}
		return nil, JobDetailsOutput{URL: input.URL, Description: md}, nil
	})
}
