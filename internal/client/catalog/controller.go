package catalog

import (
	"context"
	"slices"
	"sync"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/client/gateway"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

// Query is the parameter tuple that determines which page is shown.
// It doubles as the fetch token: every issued fetch carries the Query
// it was built from, and a completed fetch applies only while that
// Query is still current.
type Query struct {
	Search   string
	Category string
	Page     int
}

// Snapshot is the controller state handed to the view on every change.
type Snapshot struct {
	State      State
	Query      Query
	Products   []gateway.Product
	Categories []string
	TotalPages int
	Err        error
}

type Lister interface {
	ListProducts(context.Context, gateway.ListQuery) (gateway.ProductPage, error)
}

// Controller owns the query parameters and the displayed page.
// Setters may overlap with in-flight fetches; arrival order is not
// trusted. A result whose originating Query no longer matches the
// current one is discarded silently, so the display always reflects
// the latest user action.
type Controller struct {
	mu         sync.Mutex
	lister     Lister
	pageSize   int
	query      Query
	state      State
	products   []gateway.Product
	categories []string
	totalPages int
	lastErr    error
	onChange   func(Snapshot)
}

func NewController(lister Lister, pageSize int, onChange func(Snapshot)) *Controller {
	if onChange == nil {
		onChange = func(Snapshot) {}
	}
	return &Controller{
		lister:   lister,
		pageSize: pageSize,
		onChange: onChange,
	}
}

// Start issues the initial fetch with the zero query.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.dispatchLocked(ctx)
	c.mu.Unlock()
}

// SetSearch resets the page to 0: a filter change always starts a
// fresh listing.
func (c *Controller) SetSearch(ctx context.Context, search string) {
	c.mu.Lock()
	c.query.Search = search
	c.query.Page = 0
	c.dispatchLocked(ctx)
	c.mu.Unlock()
}

// SetCategory resets the page to 0, same as SetSearch.
func (c *Controller) SetCategory(ctx context.Context, category string) {
	c.mu.Lock()
	c.query.Category = category
	c.query.Page = 0
	c.dispatchLocked(ctx)
	c.mu.Unlock()
}

// SetPage leaves search and category intact.
func (c *Controller) SetPage(ctx context.Context, page int) {
	if page < 0 {
		page = 0
	}
	c.mu.Lock()
	c.query.Page = page
	c.dispatchLocked(ctx)
	c.mu.Unlock()
}

// Refresh re-runs the current query. Mutations call this after a
// successful write so pagination counts stay consistent with the
// server instead of being spliced locally.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.dispatchLocked(ctx)
	c.mu.Unlock()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:      c.state,
		Query:      c.query,
		Products:   slices.Clone(c.products),
		Categories: slices.Clone(c.categories),
		TotalPages: c.totalPages,
		Err:        c.lastErr,
	}
}

func (c *Controller) dispatchLocked(ctx context.Context) {
	c.state = StateLoading
	issued := c.query
	go c.fetch(ctx, issued)
}

func (c *Controller) fetch(ctx context.Context, issued Query) {
	page, err := c.lister.ListProducts(ctx, gateway.ListQuery{
		Search:   issued.Search,
		Category: issued.Category,
		Page:     issued.Page,
		Size:     c.pageSize,
	})
	c.apply(ctx, issued, page, err)
}

func (c *Controller) apply(
	ctx context.Context, issued Query, page gateway.ProductPage, err error,
) {
	c.mu.Lock()

	if issued != c.query {
		// Stale: the parameters were superseded while this fetch
		// was in flight. Drop it regardless of arrival order.
		c.mu.Unlock()
		return
	}

	if err != nil {
		// Keep the previously displayed page visible.
		c.state = StateFailed
		c.lastErr = err
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.onChange(snap)
		return
	}

	if page.TotalPages > 0 && c.query.Page >= page.TotalPages {
		// The server shrank behind us (e.g. the last row of the last
		// page was deleted). Clamp to the new last page and re-fetch
		// instead of requesting an out-of-range page indefinitely.
		c.query.Page = page.TotalPages - 1
		c.dispatchLocked(ctx)
		c.mu.Unlock()
		return
	}

	c.state = StateReady
	c.lastErr = nil
	c.products = page.Content
	c.totalPages = page.TotalPages
	c.categories = deriveCategories(page.Content)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.onChange(snap)
}

// deriveCategories collects the distinct categories present on the
// current page only. The filter choices therefore never exceed what
// is visible; enumerating all categories would need a dedicated
// server endpoint.
func deriveCategories(products []gateway.Product) []string {
	var categories []string
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
