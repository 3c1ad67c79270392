package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/application/listing"
	"github.com/printshop/backend/internal/domain/finance"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Refetcher is a bound list view that reloads itself after a mutation
type Refetcher interface {
	Refetch(ctx context.Context) error
}

// ExpenseService provides application-level expense operations
type ExpenseService struct {
	repo      finance.ExpenseRepository
	logger    *zap.Logger
	listeners []Refetcher
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(repo finance.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		repo:   repo,
		logger: logger,
	}
}

// Bind registers a list view to be refetched after every successful
// mutation
func (s *ExpenseService) Bind(r Refetcher) {
	s.listeners = append(s.listeners, r)
}

// CreateExpenseRequest represents a request to create an expense
type CreateExpenseRequest struct {
	Categoria   string          `json:"categoria" binding:"required"`
	Descripcion string          `json:"descripcion" binding:"required"`
	Monto       decimal.Decimal `json:"monto"`
	Fecha       string          `json:"fecha" binding:"omitempty,fecha"`
}

// UpdateExpenseRequest represents a request to overwrite an expense
type UpdateExpenseRequest struct {
	Categoria   string          `json:"categoria" binding:"required"`
	Descripcion string          `json:"descripcion" binding:"required"`
	Monto       decimal.Decimal `json:"monto"`
	Fecha       string          `json:"fecha" binding:"required,fecha"`
}

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
	Categoria string `form:"categoria"`
	Fecha     string `form:"fecha"`
	Month     string `form:"month"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Categoria   string          `json:"categoria"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	Fecha       string          `json:"fecha"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MutationResult carries the outcome of an asynchronous mutation
type MutationResult struct {
	Response *ExpenseResponse
	Err      error
}

// Create persists a new expense and refetches bound views
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}

	expense, err := finance.NewExpense(finance.ExpenseCategory(req.Categoria), req.Descripcion, req.Monto, fecha)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.notify(ctx)
	return toExpenseResponse(expense), nil
}

// CreateAsync runs Create without blocking the caller. The result is
// delivered on the returned channel exactly once.
func (s *ExpenseService) CreateAsync(ctx context.Context, req CreateExpenseRequest) <-chan MutationResult {
	out := make(chan MutationResult, 1)
	go func() {
		resp, err := s.Create(ctx, req)
		if err != nil {
			s.logger.Error("async expense create failed", zap.Error(err))
		}
		out <- MutationResult{Response: resp, Err: err}
		close(out)
	}()
	return out
}

// GetByID returns one expense
func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// List returns the filtered page and the total match count
func (s *ExpenseService) List(ctx context.Context, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	domainFilter := toExpenseFilter(filter)

	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	expenses, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, *toExpenseResponse(&expenses[i]))
	}
	return responses, total, nil
}

// Update overwrites an expense, then refetches bound views
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if err := expense.Update(finance.ExpenseCategory(req.Categoria), req.Descripcion, req.Monto, fecha); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}

	s.notify(ctx)
	return toExpenseResponse(expense), nil
}

// UpdateAsync runs Update without blocking the caller
func (s *ExpenseService) UpdateAsync(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) <-chan MutationResult {
	out := make(chan MutationResult, 1)
	go func() {
		resp, err := s.Update(ctx, id, req)
		if err != nil {
			s.logger.Error("async expense update failed", zap.String("id", id.String()), zap.Error(err))
		}
		out <- MutationResult{Response: resp, Err: err}
		close(out)
	}()
	return out
}

// Delete removes an expense, then refetches bound views
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

// DeleteAsync runs Delete without blocking the caller
func (s *ExpenseService) DeleteAsync(ctx context.Context, id uuid.UUID) <-chan MutationResult {
	out := make(chan MutationResult, 1)
	go func() {
		err := s.Delete(ctx, id)
		if err != nil {
			s.logger.Error("async expense delete failed", zap.String("id", id.String()), zap.Error(err))
		}
		out <- MutationResult{Err: err}
		close(out)
	}()
	return out
}

// Count implements listing.Fetcher over expenses
func (s *ExpenseService) Count(ctx context.Context, filter listing.Filter) (int64, error) {
	return s.repo.Count(ctx, fromListingFilter(filter))
}

// Page implements listing.Fetcher over expenses
func (s *ExpenseService) Page(ctx context.Context, filter listing.Filter) ([]ExpenseResponse, error) {
	expenses, err := s.repo.FindAll(ctx, fromListingFilter(filter))
	if err != nil {
		return nil, err
	}
	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, *toExpenseResponse(&expenses[i]))
	}
	return responses, nil
}

func (s *ExpenseService) notify(ctx context.Context) {
	for _, l := range s.listeners {
		if err := l.Refetch(ctx); err != nil {
			s.logger.Warn("bound view refetch failed", zap.Error(err))
		}
	}
}

func parseFecha(raw string) (valueobject.Date, error) {
	if raw == "" {
		return "", nil
	}
	fecha, err := valueobject.NewDate(raw)
	if err != nil {
		return "", shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD form")
	}
	return fecha, nil
}

func toExpenseFilter(f ExpenseListFilter) finance.ExpenseFilter {
	categoria := f.Categoria
	if categoria == "all" {
		categoria = ""
	}
	return finance.ExpenseFilter{
		Categoria: categoria,
		Fecha:     valueobject.Date(f.Fecha),
		Month:     f.Month,
		Page:      f.Page,
		PageSize:  f.PageSize,
	}
}

func fromListingFilter(f listing.Filter) finance.ExpenseFilter {
	categoria := f.Selector
	if categoria == "all" {
		categoria = ""
	}
	return finance.ExpenseFilter{
		Categoria: categoria,
		Fecha:     f.Fecha,
		Month:     f.Month,
		Page:      f.Page,
		PageSize:  f.PageSize,
	}
}

func toExpenseResponse(e *finance.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		Categoria:   e.Categoria.String(),
		Descripcion: e.Descripcion,
		Monto:       e.Monto,
		Fecha:       e.Fecha.String(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
