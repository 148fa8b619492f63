package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// fieldProjection limits upstream payloads to the fields the cleaner reads.
const fieldProjection = "id,slug,link,date,title,content,meta,job-locations,job-types,job-categories"

// Response headers carrying collection totals.
const (
	headerTotal      = "X-WP-Total"
	headerTotalPages = "X-WP-TotalPages"
)

// UpstreamError is a non-success HTTP status from the listing source. It is
// fatal to the current aggregation phase; the engine never retries it.
type UpstreamError struct {
	StatusCode int
	Status     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %s", e.Status)
}

// rendered is WP's {"rendered": "..."} wrapper.
type rendered struct {
	Rendered string `json:"rendered"`
}

// flexString tolerates the upstream serializing meta values as either JSON
// strings or bare numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

// flexValues tolerates taxonomy fields arriving as an array of names, an
// object keyed by term ID, or a single string. Object values are ordered by
// key so repeated identical requests flatten identically.
type flexValues []string

func (f *flexValues) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*f = arr
		return nil
	}
	var obj map[string]string
	if err := json.Unmarshal(data, &obj); err == nil {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		vals := make([]string, 0, len(obj))
		for _, k := range keys {
			vals = append(vals, obj[k])
		}
		*f = vals
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		*f = []string{s}
		return nil
	}
	*f = nil
	return nil
}

type rawMeta struct {
	CompanyName    flexString `json:"_company_name"`
	CompanyLogo    flexString `json:"_company_logo"`
	CompanyWebsite flexString `json:"_company_website"`
	Salary         flexString `json:"_job_salary"`
	SalaryMax      flexString `json:"_job_salary_max"`
	Qualification  flexString `json:"_job_qualification"`
	Experience     flexString `json:"_job_experience"`
}

// rawListing is one record as the upstream serves it.
type rawListing struct {
	ID         int        `json:"id"`
	Slug       string     `json:"slug"`
	Link       string     `json:"link"`
	Date       string     `json:"date"`
	Title      rendered   `json:"title"`
	Content    rendered   `json:"content"`
	Meta       rawMeta    `json:"meta"`
	Locations  flexValues `json:"job-locations"`
	Types      flexValues `json:"job-types"`
	Categories flexValues `json:"job-categories"`
}

// pageQuery is the shared query-parameter template for one aggregation phase.
type pageQuery struct {
	PerPage int
	Search  string // server-side search string; empty disables pre-filtering
}

// upstreamPage is one fetched page plus the totals the upstream reported.
type upstreamPage struct {
	Records    []rawListing `json:"records"`
	Total      int          `json:"total"`
	TotalPages int          `json:"totalPages"`
}

// fetchPage performs one GET against the listing endpoint. Totals come from
// response headers, falling back to the record count when absent. Results are
// served from the page cache when a fresh identical request was made recently.
func fetchPage(ctx context.Context, q pageQuery, page int) (*upstreamPage, error) {
	u, err := url.Parse(cfg.UpstreamURL)
	if err != nil {
		return nil, fmt.Errorf("upstream url: %w", err)
	}
	qs := u.Query()
	qs.Set("per_page", strconv.Itoa(q.PerPage))
	qs.Set("page", strconv.Itoa(page))
	qs.Set("_fields", fieldProjection)
	if q.Search != "" {
		qs.Set("search", q.Search)
	}
	u.RawQuery = qs.Encode()
	pageURL := u.String()

	cacheKey := CacheKey("page", pageURL)
	if data, ok := CacheGet(ctx, cacheKey); ok {
		var cached upstreamPage
		if json.Unmarshal(data, &cached) == nil {
			return &cached, nil
		}
	}

	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	IncrUpstreamRequests()

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgentBot)
	req.Header.Set("Accept", "application/json")

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		IncrUpstreamErrors()
		return nil, fmt.Errorf("upstream fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		IncrUpstreamErrors()
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		IncrUpstreamErrors()
		return nil, fmt.Errorf("upstream read: %w", err)
	}

	var records []rawListing
	if err := json.Unmarshal(body, &records); err != nil {
		IncrUpstreamErrors()
		return nil, fmt.Errorf("upstream parse: %w", err)
	}

	p := &upstreamPage{
		Records:    records,
		Total:      headerInt(resp.Header, headerTotal, len(records)),
		TotalPages: headerInt(resp.Header, headerTotalPages, pageCount(len(records), q.PerPage)),
	}

	if data, err := json.Marshal(p); err == nil {
		CacheSet(ctx, cacheKey, data)
	}

	slog.Debug("upstream: page fetched",
		slog.Int("page", page),
		slog.Int("records", len(records)),
		slog.Int("total", p.Total),
		slog.Bool("server_search", q.Search != ""))
	return p, nil
}

// headerInt parses a numeric response header, returning fallback when the
// header is absent or malformed.
func headerInt(h http.Header, name string, fallback int) int {
	v := strings.TrimSpace(h.Get(name))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func pageCount(records, perPage int) int {
	if perPage <= 0 || records == 0 {
		return 1
	}
	return (records + perPage - 1) / perPage
}
