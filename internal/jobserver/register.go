// Package jobserver exposes the discovery engine over MCP: job_search runs
// the aggregation pipeline, job_details fetches one posting's full text, and
// search_events reads back the recorded telemetry.
package jobserver

import (
	"github.com/jobsahayak/go_discovery/internal/telemetry"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all discovery tools on the given MCP server.
// rec may be nil, which disables event recording.
func RegisterTools(server *mcp.Server, rec telemetry.Recorder) {
	registerJobSearch(server, rec)
	registerJobDetails(server)
	registerSearchEvents(server, rec)
}
