package listing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves a fixed record set and remembers the filters it
// was called with. An optional gate holds the first page query open
// until the test releases it; entered is closed when that query starts.
type fakeFetcher struct {
	mu      sync.Mutex
	records []string
	err     error
	filters []Filter
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeFetcher) Count(ctx context.Context, filter Filter) (int64, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	err := f.err
	n := int64(len(f.records))
	f.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (f *fakeFetcher) Page(ctx context.Context, filter Filter) ([]string, error) {
	f.mu.Lock()
	err := f.err
	records := f.records
	gate := f.gate
	f.gate = nil
	f.mu.Unlock()
	if gate != nil {
		if f.entered != nil {
			close(f.entered)
		}
		<-gate
	}
	if err != nil {
		return nil, err
	}
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(records) {
		return nil, nil
	}
	end := start + filter.PageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end], nil
}

func records(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func TestController_Refetch(t *testing.T) {
	ctx := context.Background()

	t.Run("starts idle", func(t *testing.T) {
		c := NewController[string](&fakeFetcher{})
		assert.Equal(t, StateIdle, c.Snapshot().State)
	})

	t.Run("loads a page and computes total pages", func(t *testing.T) {
		c := NewController[string](&fakeFetcher{records: records(12)})
		require.NoError(t, c.Refetch(ctx))

		snap := c.Snapshot()
		assert.Equal(t, StateLoaded, snap.State)
		assert.Equal(t, int64(12), snap.Total)
		assert.Equal(t, 3, snap.TotalPages) // 12 records, page size 5
		assert.Len(t, snap.Records, 5)
	})

	t.Run("single matching record means one page for any size", func(t *testing.T) {
		c := NewController[string](&fakeFetcher{records: records(1)})
		require.NoError(t, c.Refetch(ctx))
		assert.Equal(t, 1, c.Snapshot().TotalPages)
	})

	t.Run("keeps last-good page on error", func(t *testing.T) {
		f := &fakeFetcher{records: records(3)}
		c := NewController[string](f)
		require.NoError(t, c.Refetch(ctx))
		loaded := c.Snapshot()

		f.mu.Lock()
		f.err = errors.New("store unavailable")
		f.mu.Unlock()

		err := c.Refetch(ctx)
		require.Error(t, err)

		snap := c.Snapshot()
		assert.Equal(t, StateError, snap.State)
		assert.Error(t, snap.Err)
		assert.Equal(t, loaded.Records, snap.Records)
		assert.Equal(t, loaded.TotalPages, snap.TotalPages)
	})
}

func TestController_FilterSetters(t *testing.T) {
	ctx := context.Background()

	t.Run("selector change resets page to 1", func(t *testing.T) {
		c := NewController[string](&fakeFetcher{records: records(20)})
		require.NoError(t, c.SetPage(ctx, 3))
		require.NoError(t, c.SetSelector(ctx, "alumno"))

		filter := c.Filter()
		assert.Equal(t, "alumno", filter.Selector)
		assert.Equal(t, 1, filter.Page)
	})

	t.Run("date change resets page and clears month", func(t *testing.T) {
		c := NewController[string](&fakeFetcher{records: records(20)})
		require.NoError(t, c.SetMonth(ctx, "2024-02"))
		require.NoError(t, c.SetPage(ctx, 2))
		require.NoError(t, c.SetDate(ctx, "2024-02-10"))

		filter := c.Filter()
		assert.Equal(t, "", filter.Month)
		assert.Equal(t, "2024-02-10", filter.Fecha.String())
		assert.Equal(t, 1, filter.Page)
	})

	t.Run("month change clears exact date", func(t *testing.T) {
		c := NewController[string](&fakeFetcher{records: records(20)})
		require.NoError(t, c.SetDate(ctx, "2024-02-10"))
		require.NoError(t, c.SetMonth(ctx, "2024-03"))

		filter := c.Filter()
		assert.True(t, filter.Fecha.IsZero())
		assert.Equal(t, "2024-03", filter.Month)
	})

	t.Run("page size change resets page, invalid size ignored", func(t *testing.T) {
		c := NewController[string](&fakeFetcher{records: records(40)})
		require.NoError(t, c.SetPage(ctx, 4))
		require.NoError(t, c.SetPageSize(ctx, 10))
		assert.Equal(t, 10, c.Filter().PageSize)
		assert.Equal(t, 1, c.Filter().Page)

		require.NoError(t, c.SetPage(ctx, 2))
		require.NoError(t, c.SetPageSize(ctx, 7))
		assert.Equal(t, 10, c.Filter().PageSize)
		assert.Equal(t, 2, c.Filter().Page)
	})

	t.Run("page change keeps other filter dimensions", func(t *testing.T) {
		c := NewController[string](&fakeFetcher{records: records(20)})
		require.NoError(t, c.SetSelector(ctx, "papel"))
		require.NoError(t, c.SetPage(ctx, 2))

		filter := c.Filter()
		assert.Equal(t, "papel", filter.Selector)
		assert.Equal(t, 2, filter.Page)
	})
}

func TestController_PaginationWindows(t *testing.T) {
	// offset windows for distinct valid pages never overlap
	size := 10
	seen := map[int]bool{}
	for p := 1; p <= 5; p++ {
		for off := (p - 1) * size; off < p*size; off++ {
			assert.False(t, seen[off], "offset %d covered twice", off)
			seen[off] = true
		}
	}
}

func TestController_StaleFetchIsDiscarded(t *testing.T) {
	ctx := context.Background()

	gate := make(chan struct{})
	f := &fakeFetcher{
		records: records(3),
		gate:    gate,
		entered: make(chan struct{}),
	}
	c := NewController[string](f)

	done := make(chan error, 1)
	go func() { done <- c.Refetch(ctx) }()
	<-f.entered // first fetch is now held open inside its page query

	// a newer fetch supersedes the held one and sees more records
	f.mu.Lock()
	f.records = records(8)
	f.mu.Unlock()
	require.NoError(t, c.Refetch(ctx))
	assert.Equal(t, int64(8), c.Snapshot().Total)

	// release the stale fetch; its completion must not overwrite state
	close(gate)
	require.NoError(t, <-done)

	snap := c.Snapshot()
	assert.Equal(t, int64(8), snap.Total)
	assert.Len(t, snap.Records, 5)
}
