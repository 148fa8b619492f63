package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// Selectors tried in order when locating the posting body on a listing page.
var detailsSelectors = []string{
	".job_description",
	".single_job_listing",
	"article",
	"main",
	"#content",
}

var detailsNoiseSelectors = []string{
	"script", "style", "noscript", "iframe", "svg",
	"header", "footer", "nav", "aside", "form",
	".application", ".job_application", ".sidebar", ".related-jobs",
}

// FetchJobDetails fetches a listing's full-description page and returns the
// posting body as markdown. Results are cached by URL so repeated lookups of
// the same posting within the cache TTL skip the network.
func FetchJobDetails(ctx context.Context, rawURL string) (string, error) {
	IncrDetailsRequests()

	cacheKey := CacheKey("details", rawURL)
	if data, ok := CacheGet(ctx, cacheKey); ok {
		return string(data), nil
	}

	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", UserAgentBot)

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		IncrDetailsErrors()
		return "", fmt.Errorf("details fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		IncrDetailsErrors()
		return "", &UpstreamError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		IncrDetailsErrors()
		return "", fmt.Errorf("details read: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		IncrDetailsErrors()
		return "", fmt.Errorf("details parse: %w", err)
	}

	doc.Find(strings.Join(detailsNoiseSelectors, ", ")).Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	content := doc.Find(strings.Join(detailsSelectors, ", ")).First()
	if content.Length() == 0 {
		content = doc.Find("body")
	}

	contentHTML, err := content.Html()
	if err != nil {
		IncrDetailsErrors()
		return "", fmt.Errorf("details render: %w", err)
	}

	md, err := htmltomarkdown.ConvertString(contentHTML)
	if err != nil {
		// Markdown conversion is best-effort; fall back to stripped text.
		md = StripHTML(contentHTML)
	}
	md = strings.TrimSpace(md)
	md = TruncateRunes(md, cfg.MaxDetailsChars, "...")

	if md != "" {
		CacheSet(ctx, cacheKey, []byte(md))
	}
	return md, nil
}
