package printing

import (
	"context"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// ImpressionFilter narrows impression queries. The same predicate set
// backs both the count query and the page query so the reported total
// always matches the page contents.
type ImpressionFilter struct {
	// Usuario filters by user kind when set ("all" and "" mean no filter)
	Usuario string
	// Fecha selects an exact day when set
	Fecha valueobject.Date
	// Month selects a whole calendar month (YYYY-MM) when set and Fecha
	// is empty
	Month string
	// Page is 1-based; PageSize of 0 disables pagination
	Page     int
	PageSize int
}

// ImpressionRepository persists Impression aggregates together with
// their owned line items
type ImpressionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Impression, error)
	// FindAll returns the filtered page ordered by fecha descending,
	// line items included
	FindAll(ctx context.Context, filter ImpressionFilter) ([]Impression, error)
	// Count returns the number of records matching the filter,
	// ignoring pagination
	Count(ctx context.Context, filter ImpressionFilter) (int64, error)
	Create(ctx context.Context, impression *Impression) error
	// Update overwrites the parent fields and replaces the whole
	// detail set in a single transaction
	Update(ctx context.Context, impression *Impression) error
	Delete(ctx context.Context, id uuid.UUID) error
}
