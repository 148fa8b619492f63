package engine

// --- Discovery request/response types ---

// Telemetry identifies one discovery call for downstream event recording.
// The engine echoes these IDs back in ResponseMeta; it never persists them itself.
type Telemetry struct {
	RequestID      string `json:"requestId"`
	ConversationID string `json:"conversationId,omitempty"`
	RequestedAt    string `json:"requestedAt,omitempty"`
}

// SearchRequest describes one job discovery call. It is immutable for the
// duration of the call.
type SearchRequest struct {
	Search          string    `json:"search,omitempty"`
	Location        string    `json:"location,omitempty"`
	JobType         string    `json:"jobType,omitempty"`
	Limit           int       `json:"limit,omitempty"`
	Page            int       `json:"page,omitempty"`
	SkillKeywords   []string  `json:"skillKeywords,omitempty"`
	GeneralKeywords []string  `json:"generalKeywords,omitempty"`
	Telemetry       Telemetry `json:"telemetry"`
}

// Relevance records which caller-supplied keywords were found in a listing's
// text. A nil Relevance means "no scoring data", distinct from "scored but
// zero matches".
type Relevance struct {
	SkillMatches   []string `json:"skillMatches"`
	GeneralMatches []string `json:"generalMatches"`
}

// Listing is one normalized job posting. Fields are final once the listing
// is placed in a response.
type Listing struct {
	ID                 int        `json:"id"`
	Slug               string     `json:"slug"`
	Title              string     `json:"title"`
	Link               string     `json:"link"`
	Employer           string     `json:"employer"`
	EmployerLogo       string     `json:"employerLogo,omitempty"`
	EmployerURL        string     `json:"employerUrl,omitempty"`
	Location           string     `json:"location"`
	JobType            string     `json:"jobType"`
	Category           string     `json:"category"`
	Qualification      string     `json:"qualification"`
	Experience         string     `json:"experience"`
	Salary             string     `json:"salary"`
	Description        string     `json:"description"`
	PostedDate         string     `json:"postedDate,omitempty"`
	FullDescriptionURL string     `json:"fullDescriptionUrl"`
	Relevance          *Relevance `json:"relevance,omitempty"`
}

// ResponseMeta carries diagnostics about how the search was executed.
type ResponseMeta struct {
	TelemetryID     string   `json:"telemetryId,omitempty"`
	ConversationID  string   `json:"conversationId,omitempty"`
	BroadenedSearch bool     `json:"broadenedSearch,omitempty"`
	LowResultCount  *int     `json:"lowResultCount,omitempty"`
	RequestedCount  int      `json:"requestedCount"`
	SearchKeywords  []string `json:"searchKeywords"`
	SkillKeywords   []string `json:"skillKeywords"`
	GeneralKeywords []string `json:"generalKeywords"`
}

// SearchResponse is the final payload returned to the caller. Count always
// equals len(Jobs) and Jobs never contains two listings with the same ID.
type SearchResponse struct {
	Success     bool          `json:"success"`
	Count       int           `json:"count"`
	Total       int           `json:"total"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Jobs        []Listing     `json:"jobs"`
	Message     string        `json:"message,omitempty"`
	Tips        []string      `json:"tips,omitempty"`
	Meta        *ResponseMeta `json:"meta,omitempty"`
}
