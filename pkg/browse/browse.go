// Package browse holds the paging state machine behind a ward's issue feed:
// cursor tracking, incremental page loads, and client-side status and
// priority filtering.
package browse

import (
	"context"
	"sync"

	"github.com/xyz-asif/civiclens/pkg/client"
)

// DefaultPageSize matches the server's default list page size.
const DefaultPageSize = 10

// FilterAll is the sentinel that disables a filter dimension.
const FilterAll = "all"

// Fetcher is the slice of the API client a feed needs. *client.Client
// satisfies it.
type Fetcher interface {
	ListIssues(ctx context.Context, p client.ListParams) ([]client.Issue, error)
}

// Filters narrows the visible slice of loaded issues. Filtering is local;
// it never triggers a refetch.
type Filters struct {
	Status   string
	Priority string
}

// Feed accumulates pages of one ward's issues. A feed is safe for
// concurrent use.
//
// Exhaustion is inferred from page size: a page shorter than PageSize means
// the server has no more, while an exactly full page leaves hasMore set and
// the next load may come back empty.
type Feed struct {
	fetch    Fetcher
	pageSize int

	mu      sync.Mutex
	ward    string
	filters Filters
	items   []client.Issue
	page    int
	hasMore bool
	loading bool
	err     error
	gen     uint64
	cancel  context.CancelFunc
}

func NewFeed(fetch Fetcher) *Feed {
	return &Feed{
		fetch:    fetch,
		pageSize: DefaultPageSize,
		page:     1,
		hasMore:  true,
	}
}

// SetPageSize overrides the page size for subsequent loads.
func (f *Feed) SetPageSize(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n > 0 {
		f.pageSize = n
	}
}

// Reset points the feed at a ward and clears all loaded state. Any load
// still in flight is cancelled, and its response is discarded even if it
// arrives after the reset.
func (f *Feed) Reset(ward string, filters Filters) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}

	f.ward = ward
	f.filters = filters
	f.items = nil
	f.page = 1
	f.hasMore = true
	f.loading = false
	f.err = nil
	f.gen++
}

// SetFilters changes the visible filters without touching loaded pages.
func (f *Feed) SetFilters(filters Filters) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = filters
}

// LoadMore fetches the next page and appends it. It is a no-op when a load
// is already running, the feed is exhausted, or a previous load failed and
// has not been cleared by Reset or Retry.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.loading || !f.hasMore || f.err != nil {
		f.mu.Unlock()
		return f.err
	}

	gen := f.gen
	page := f.page
	ward := f.ward
	limit := f.pageSize

	fetchCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.loading = true
	f.mu.Unlock()

	issues, err := f.fetch.ListIssues(fetchCtx, client.ListParams{
		Ward:  ward,
		Page:  page,
		Limit: limit,
	})
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	// The feed was reset while this page was in flight; the response
	// belongs to the old ward and must not leak into the new one.
	if gen != f.gen {
		return nil
	}

	f.loading = false
	f.cancel = nil

	if err != nil {
		f.err = err
		return err
	}

	f.items = append(f.items, issues...)
	f.page++
	f.hasMore = len(issues) == limit
	return nil
}

// Retry clears a load error so LoadMore can run again from the same cursor.
func (f *Feed) Retry() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = nil
}

// Visible applies the active filters over everything loaded so far. The
// returned slice is a copy.
func (f *Feed) Visible() []client.Issue {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]client.Issue, 0, len(f.items))
	for _, issue := range f.items {
		if !matches(f.filters.Status, issue.Status) {
			continue
		}
		if !matches(f.filters.Priority, issue.Priority) {
			continue
		}
		out = append(out, issue)
	}
	return out
}

// Items returns everything loaded so far, unfiltered.
func (f *Feed) Items() []client.Issue {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]client.Issue, len(f.items))
	copy(out, f.items)
	return out
}

// HasMore reports whether another page may exist.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// Loading reports whether a page fetch is in flight.
func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Err returns the error from the last failed load, nil otherwise.
func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Ward returns the ward the feed is pointed at.
func (f *Feed) Ward() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ward
}

func matches(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}
