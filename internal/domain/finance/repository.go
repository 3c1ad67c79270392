package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// ExpenseFilter narrows expense queries. Count and page queries share
// the same predicates so the total always matches the listed records.
type ExpenseFilter struct {
	// Categoria filters by category when set ("all" and "" mean no filter)
	Categoria string
	// Fecha selects an exact day when set
	Fecha valueobject.Date
	// Month selects a whole calendar month (YYYY-MM) when set and Fecha
	// is empty
	Month string
	// Page is 1-based; PageSize of 0 disables pagination
	Page     int
	PageSize int
}

// ExpenseRepository persists Expense records
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	// FindAll returns the filtered page ordered by fecha descending
	FindAll(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	// Count returns the number of records matching the filter,
	// ignoring pagination
	Count(ctx context.Context, filter ExpenseFilter) (int64, error)
	Create(ctx context.Context, expense *Expense) error
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}
