package finance

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/application/listing"
	"github.com/printshop/backend/internal/domain/finance"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryExpenseRepo is an in-memory ExpenseRepository for service tests
type memoryExpenseRepo struct {
	records map[uuid.UUID]*finance.Expense
	failing bool
}

func newMemoryExpenseRepo() *memoryExpenseRepo {
	return &memoryExpenseRepo{records: make(map[uuid.UUID]*finance.Expense)}
}

func (r *memoryExpenseRepo) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	if r.failing {
		return nil, errors.New("store unavailable")
	}
	e, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *memoryExpenseRepo) matching(filter finance.ExpenseFilter) []finance.Expense {
	out := make([]finance.Expense, 0, len(r.records))
	for _, e := range r.records {
		if filter.Categoria != "" && e.Categoria.String() != filter.Categoria {
			continue
		}
		if !filter.Fecha.IsZero() && e.Fecha != filter.Fecha {
			continue
		}
		if filter.Fecha.IsZero() && filter.Month != "" && e.Fecha.Month() != filter.Month {
			continue
		}
		out = append(out, *e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha > out[j].Fecha })
	return out
}

func (r *memoryExpenseRepo) FindAll(ctx context.Context, filter finance.ExpenseFilter) ([]finance.Expense, error) {
	if r.failing {
		return nil, errors.New("store unavailable")
	}
	out := r.matching(filter)
	if filter.PageSize > 0 {
		start := (filter.Page - 1) * filter.PageSize
		if start >= len(out) {
			return nil, nil
		}
		end := start + filter.PageSize
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, nil
}

func (r *memoryExpenseRepo) Count(ctx context.Context, filter finance.ExpenseFilter) (int64, error) {
	if r.failing {
		return 0, errors.New("store unavailable")
	}
	return int64(len(r.matching(filter))), nil
}

func (r *memoryExpenseRepo) Create(ctx context.Context, expense *finance.Expense) error {
	if r.failing {
		return errors.New("store unavailable")
	}
	copied := *expense
	r.records[expense.ID] = &copied
	return nil
}

func (r *memoryExpenseRepo) Update(ctx context.Context, expense *finance.Expense) error {
	if r.failing {
		return errors.New("store unavailable")
	}
	if _, ok := r.records[expense.ID]; !ok {
		return shared.ErrNotFound
	}
	copied := *expense
	r.records[expense.ID] = &copied
	return nil
}

func (r *memoryExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.failing {
		return errors.New("store unavailable")
	}
	if _, ok := r.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

type countingRefetcher struct {
	calls int
}

func (c *countingRefetcher) Refetch(ctx context.Context) error {
	c.calls++
	return nil
}

func newService(repo finance.ExpenseRepository) *ExpenseService {
	return NewExpenseService(repo, zap.NewNop())
}

func TestExpenseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a valid expense", func(t *testing.T) {
		repo := newMemoryExpenseRepo()
		svc := newService(repo)

		resp, err := svc.Create(ctx, CreateExpenseRequest{
			Categoria:   "papel",
			Descripcion: "Resma carta",
			Monto:       decimal.NewFromFloat(25.50),
			Fecha:       "2024-02-10",
		})
		require.NoError(t, err)
		assert.Equal(t, "papel", resp.Categoria)
		assert.True(t, resp.Monto.Equal(decimal.NewFromFloat(25.50)))
		assert.Len(t, repo.records, 1)
	})

	t.Run("invalid category stores nothing", func(t *testing.T) {
		repo := newMemoryExpenseRepo()
		svc := newService(repo)

		_, err := svc.Create(ctx, CreateExpenseRequest{
			Categoria:   "luz",
			Descripcion: "Recibo",
			Monto:       decimal.NewFromFloat(10),
		})
		require.Error(t, err)
		assert.Empty(t, repo.records)
	})

	t.Run("refetches bound views on success only", func(t *testing.T) {
		repo := newMemoryExpenseRepo()
		svc := newService(repo)
		view := &countingRefetcher{}
		svc.Bind(view)

		_, err := svc.Create(ctx, CreateExpenseRequest{
			Categoria:   "tinta",
			Descripcion: "Cartucho",
			Monto:       decimal.NewFromFloat(45),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, view.calls)

		repo.failing = true
		_, err = svc.Create(ctx, CreateExpenseRequest{
			Categoria:   "tinta",
			Descripcion: "Cartucho",
			Monto:       decimal.NewFromFloat(45),
		})
		require.Error(t, err)
		assert.Equal(t, 1, view.calls)
	})
}

func TestExpenseService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryExpenseRepo()
	svc := newService(repo)

	created, err := svc.Create(ctx, CreateExpenseRequest{
		Categoria:   "papel",
		Descripcion: "Resma carta",
		Monto:       decimal.NewFromFloat(25.50),
		Fecha:       "2024-02-10",
	})
	require.NoError(t, err)

	t.Run("update overwrites all fields", func(t *testing.T) {
		resp, err := svc.Update(ctx, created.ID, UpdateExpenseRequest{
			Categoria:   "mantenimiento",
			Descripcion: "Servicio impresora",
			Monto:       decimal.NewFromFloat(300),
			Fecha:       "2024-03-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "mantenimiento", resp.Categoria)
		assert.Equal(t, "2024-03-01", resp.Fecha)
	})

	t.Run("update of unknown id fails", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), UpdateExpenseRequest{
			Categoria:   "papel",
			Descripcion: "Resma",
			Monto:       decimal.NewFromFloat(10),
			Fecha:       "2024-03-01",
		})
		assert.Error(t, err)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, created.ID))
		_, err := svc.GetByID(ctx, created.ID)
		assert.Error(t, err)
	})
}

func TestExpenseService_AsyncMutations(t *testing.T) {
	ctx := context.Background()

	t.Run("async create delivers the result", func(t *testing.T) {
		svc := newService(newMemoryExpenseRepo())
		result := <-svc.CreateAsync(ctx, CreateExpenseRequest{
			Categoria:   "suministros",
			Descripcion: "Grapas",
			Monto:       decimal.NewFromFloat(3.20),
		})
		require.NoError(t, result.Err)
		require.NotNil(t, result.Response)
		assert.Equal(t, "suministros", result.Response.Categoria)
	})

	t.Run("async delete delivers the failure", func(t *testing.T) {
		repo := newMemoryExpenseRepo()
		repo.failing = true
		svc := newService(repo)
		result := <-svc.DeleteAsync(ctx, uuid.New())
		assert.Error(t, result.Err)
	})
}

func TestExpenseService_BoundController(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemoryExpenseRepo())

	ctrl := listing.NewController[ExpenseResponse](svc)
	svc.Bind(ctrl)
	require.NoError(t, ctrl.Refetch(ctx))

	_, err := svc.Create(ctx, CreateExpenseRequest{
		Categoria:   "papel",
		Descripcion: "Resma carta",
		Monto:       decimal.NewFromFloat(25.50),
		Fecha:       "2024-02-10",
	})
	require.NoError(t, err)

	snap := ctrl.Snapshot()
	assert.Equal(t, listing.StateLoaded, snap.State)
	assert.Equal(t, int64(1), snap.Total)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "papel", snap.Records[0].Categoria)
}
