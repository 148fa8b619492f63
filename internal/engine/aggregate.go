package engine

import (
	"context"
	"log/slog"
)

// collector accumulates listings across pages and across the primary and
// fallback phases of one call. Each call owns its own collector; nothing here
// is shared between concurrent searches.
type collector struct {
	collected    []Listing
	seenIDs      map[int]bool
	pagesFetched int

	// Totals from the most recent successful fetch.
	total      int
	totalPages int
}

func newCollector() *collector {
	return &collector{seenIDs: make(map[int]bool)}
}

// add appends l unless its ID was already collected in either phase.
func (c *collector) add(l Listing) {
	if c.seenIDs[l.ID] {
		return
	}
	c.seenIDs[l.ID] = true
	c.collected = append(c.collected, l)
}

// runPhase drives one fetch-clean-filter loop against the upstream, starting
// at startPage, until the collected count reaches limit, the page number
// reaches the upstream-reported page total, or the shared fetch ceiling is
// hit. Pagination is sequential on purpose: the termination condition depends
// on the totals each page reports.
func (c *collector) runPhase(ctx context.Context, phase string, q pageQuery, fc FilterContext, startPage, limit int) error {
	page := startPage
	for len(c.collected) < limit && c.pagesFetched < cfg.MaxPageFetches {
		if err := ctx.Err(); err != nil {
			return err
		}

		p, err := fetchPage(ctx, q, page)
		if err != nil {
			return err
		}
		c.pagesFetched++
		c.total = p.Total
		c.totalPages = p.TotalPages

		dropped := 0
		kept := 0
		for _, raw := range p.Records {
			l := cleanListing(raw)
			if l == nil {
				dropped++
				continue
			}
			if !fc.Keep(*l) {
				continue
			}
			before := len(c.collected)
			c.add(*l)
			if len(c.collected) > before {
				kept++
			}
		}
		if dropped > 0 {
			IncrRecordsDropped(dropped)
			slog.Warn("aggregate: dropped malformed records",
				slog.String("phase", phase),
				slog.Int("page", page),
				slog.Int("dropped", dropped))
		}
		slog.Debug("aggregate: page processed",
			slog.String("phase", phase),
			slog.Int("page", page),
			slog.Int("kept", kept),
			slog.Int("collected", len(c.collected)))

		if page >= p.TotalPages {
			break
		}
		page++
	}
	return nil
}
