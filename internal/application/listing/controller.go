package listing

import (
	"context"
	"sync"

	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// State is the lifecycle state of a paginated list view
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateError   State = "error"
)

// PageSizes are the accepted page sizes; other values are ignored
var PageSizes = []int{5, 10, 20, 50}

// DefaultPageSize is used until the caller picks another size
const DefaultPageSize = 5

// Filter is the shared filter state of a list view. The same shape
// serves both record kinds: Selector carries the user kind for
// impressions and the category for expenses.
type Filter struct {
	// Selector filters by user kind or category; "all" and "" mean
	// no filter
	Selector string
	// Fecha selects an exact day; Month (YYYY-MM) selects a whole
	// month when Fecha is empty
	Fecha valueobject.Date
	Month string
	// Page is 1-based
	Page     int
	PageSize int
}

// Fetcher runs the two queries of a list view with a shared filter.
// Count ignores pagination; Page honors it and orders newest first.
type Fetcher[T any] interface {
	Count(ctx context.Context, filter Filter) (int64, error)
	Page(ctx context.Context, filter Filter) ([]T, error)
}

// Snapshot is the observable state of a controller at one moment
type Snapshot[T any] struct {
	State      State
	Records    []T
	Total      int64
	TotalPages int
	Err        error
}

// Controller orchestrates the count and page queries of one list view.
// It is safe for concurrent use. Overlapping fetches are fenced with a
// sequence number: a completion that is not the latest issued request
// is discarded, so a slow stale response can never overwrite fresher
// state.
type Controller[T any] struct {
	mu      sync.Mutex
	fetcher Fetcher[T]
	filter  Filter
	seq     uint64
	snap    Snapshot[T]
}

// NewController creates a controller in the idle state with page 1 and
// the default page size
func NewController[T any](fetcher Fetcher[T]) *Controller[T] {
	return &Controller[T]{
		fetcher: fetcher,
		filter:  Filter{Selector: "all", Page: 1, PageSize: DefaultPageSize},
		snap:    Snapshot[T]{State: StateIdle},
	}
}

// Filter returns the current filter state
func (c *Controller[T]) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Snapshot returns the current view state
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// SetSelector changes the category/user filter, resets to page 1 and
// refetches
func (c *Controller[T]) SetSelector(ctx context.Context, selector string) error {
	c.mu.Lock()
	c.filter.Selector = selector
	c.filter.Page = 1
	c.mu.Unlock()
	return c.Refetch(ctx)
}

// SetDate changes the exact-day filter, clears any month filter, resets
// to page 1 and refetches. An empty fecha removes the date filter.
func (c *Controller[T]) SetDate(ctx context.Context, fecha valueobject.Date) error {
	c.mu.Lock()
	c.filter.Fecha = fecha
	c.filter.Month = ""
	c.filter.Page = 1
	c.mu.Unlock()
	return c.Refetch(ctx)
}

// SetMonth changes the month filter (YYYY-MM), clears any exact-day
// filter, resets to page 1 and refetches
func (c *Controller[T]) SetMonth(ctx context.Context, month string) error {
	c.mu.Lock()
	c.filter.Month = month
	c.filter.Fecha = ""
	c.filter.Page = 1
	c.mu.Unlock()
	return c.Refetch(ctx)
}

// SetPageSize changes the page size, resets to page 1 and refetches.
// Sizes outside PageSizes are ignored.
func (c *Controller[T]) SetPageSize(ctx context.Context, size int) error {
	allowed := false
	for _, s := range PageSizes {
		if s == size {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil
	}
	c.mu.Lock()
	c.filter.PageSize = size
	c.filter.Page = 1
	c.mu.Unlock()
	return c.Refetch(ctx)
}

// SetPage changes the page number without touching the other filter
// dimensions, then refetches
func (c *Controller[T]) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.filter.Page = page
	c.mu.Unlock()
	return c.Refetch(ctx)
}

// Refetch runs the count query and then the page query with the live
// filter state. On success the snapshot carries the new page and total;
// on failure the last-good page is kept and only the state and error
// change. Either way a completion belonging to a superseded request is
// discarded.
func (c *Controller[T]) Refetch(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	filter := c.filter
	c.snap.State = StateLoading
	c.mu.Unlock()

	total, err := c.fetcher.Count(ctx, filter)
	if err != nil {
		c.complete(seq, Snapshot[T]{}, err)
		return err
	}

	records, err := c.fetcher.Page(ctx, filter)
	if err != nil {
		c.complete(seq, Snapshot[T]{}, err)
		return err
	}

	totalPages := 0
	if filter.PageSize > 0 {
		totalPages = int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	}
	c.complete(seq, Snapshot[T]{
		State:      StateLoaded,
		Records:    records,
		Total:      total,
		TotalPages: totalPages,
	}, nil)
	return nil
}

// complete applies a fetch result unless a newer request has been
// issued since
func (c *Controller[T]) complete(seq uint64, snap Snapshot[T], err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return
	}
	if err != nil {
		c.snap.State = StateError
		c.snap.Err = err
		return
	}
	snap.Err = nil
	c.snap = snap
}
