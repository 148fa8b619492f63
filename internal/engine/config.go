package engine

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	UpstreamURL      string // listings endpoint (WP REST collection)
	UpstreamPageSize int    // per_page sent upstream
	FetchTimeout     time.Duration
	HTTPClient       *http.Client
	Limiter          *rate.Limiter // politeness limiter toward the upstream
	Gazetteer        Gazetteer

	// Tunables. Zero values are replaced with the defaults below in Init.
	KeywordCoverage    float64 // fraction of search keywords a listing must contain
	LowResultThreshold int     // final count below this sets meta.lowResultCount
	MaxPageFetches     int     // hard ceiling on page fetches per call (primary + fallback)
	DescriptionLimit   int     // description truncation, in runes
	MaxDetailsChars    int     // full-description markdown truncation
}

const (
	defaultPageSize           = 20
	defaultKeywordCoverage    = 0.6
	defaultLowResultThreshold = 3
	defaultMaxPageFetches     = 5
	defaultDescriptionLimit   = 800
	defaultMaxDetailsChars    = 6000
)

var cfg Config

// Cfg exposes the engine configuration for sub-packages and tests.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration, filling in
// defaults for unset tunables.
func Init(c Config) {
	if c.UpstreamPageSize <= 0 {
		c.UpstreamPageSize = defaultPageSize
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if c.Gazetteer.Locations == nil {
		c.Gazetteer = DefaultGazetteer()
	}
	if c.KeywordCoverage <= 0 {
		c.KeywordCoverage = defaultKeywordCoverage
	}
	if c.LowResultThreshold <= 0 {
		c.LowResultThreshold = defaultLowResultThreshold
	}
	if c.MaxPageFetches <= 0 {
		c.MaxPageFetches = defaultMaxPageFetches
	}
	if c.DescriptionLimit <= 0 {
		c.DescriptionLimit = defaultDescriptionLimit
	}
	if c.MaxDetailsChars <= 0 {
		c.MaxDetailsChars = defaultMaxDetailsChars
	}
	cfg = c
	Cfg = &cfg
}
