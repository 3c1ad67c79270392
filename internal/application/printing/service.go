package printing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/application/listing"
	"github.com/printshop/backend/internal/domain/printing"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Refetcher is a bound list view that reloads itself after a mutation
type Refetcher interface {
	Refetch(ctx context.Context) error
}

// ImpressionService provides application-level impression operations
type ImpressionService struct {
	repo      printing.ImpressionRepository
	logger    *zap.Logger
	listeners []Refetcher
}

// NewImpressionService creates a new ImpressionService
func NewImpressionService(repo printing.ImpressionRepository, logger *zap.Logger) *ImpressionService {
	return &ImpressionService{
		repo:   repo,
		logger: logger,
	}
}

// Bind registers a list view to be refetched after every successful
// mutation
func (s *ImpressionService) Bind(r Refetcher) {
	s.listeners = append(s.listeners, r)
}

// PrintDetailRequest is one line item of a create/update request. A
// zero costo is derived from the page count.
type PrintDetailRequest struct {
	Tipo    string          `json:"tipo" binding:"required"`
	Paginas int             `json:"paginas" binding:"required,gt=0"`
	Costo   decimal.Decimal `json:"costo"`
}

// CreateImpressionRequest represents a request to create an impression
type CreateImpressionRequest struct {
	Usuario  string               `json:"usuario" binding:"required"`
	Fecha    string               `json:"fecha" binding:"omitempty,fecha"`
	Detalles []PrintDetailRequest `json:"detalles" binding:"required,min=1,dive"`
}

// UpdateImpressionRequest represents a request to overwrite an
// impression, line items included
type UpdateImpressionRequest struct {
	Usuario  string               `json:"usuario" binding:"required"`
	Fecha    string               `json:"fecha" binding:"required,fecha"`
	Detalles []PrintDetailRequest `json:"detalles" binding:"required,min=1,dive"`
}

// ImpressionListFilter defines filtering options for impression list queries
type ImpressionListFilter struct {
	Usuario  string `form:"usuario"`
	Fecha    string `form:"fecha"`
	Month    string `form:"month"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// PrintDetailResponse represents a line item in API responses
type PrintDetailResponse struct {
	Tipo    string          `json:"tipo"`
	Paginas int             `json:"paginas"`
	Costo   decimal.Decimal `json:"costo"`
}

// ImpressionResponse represents an impression in API responses
type ImpressionResponse struct {
	ID        uuid.UUID             `json:"id"`
	Usuario   string                `json:"usuario"`
	Fecha     string                `json:"fecha"`
	Detalles  []PrintDetailResponse `json:"detalles"`
	Total     decimal.Decimal       `json:"total"`
	Paginas   int                   `json:"paginas"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// MutationResult carries the outcome of an asynchronous mutation
type MutationResult struct {
	Response *ImpressionResponse
	Err      error
}

// Create persists a new impression and refetches bound views
func (s *ImpressionService) Create(ctx context.Context, req CreateImpressionRequest) (*ImpressionResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	detalles, err := buildDetails(req.Detalles)
	if err != nil {
		return nil, err
	}

	impression, err := printing.NewImpression(printing.UserKind(req.Usuario), fecha, detalles)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, impression); err != nil {
		return nil, err
	}

	s.notify(ctx)
	return toImpressionResponse(impression), nil
}

// CreateAsync runs Create without blocking the caller. The result is
// delivered on the returned channel exactly once.
func (s *ImpressionService) CreateAsync(ctx context.Context, req CreateImpressionRequest) <-chan MutationResult {
	out := make(chan MutationResult, 1)
	go func() {
		resp, err := s.Create(ctx, req)
		if err != nil {
			s.logger.Error("async impression create failed", zap.Error(err))
		}
		out <- MutationResult{Response: resp, Err: err}
		close(out)
	}()
	return out
}

// GetByID returns one impression with its line items
func (s *ImpressionService) GetByID(ctx context.Context, id uuid.UUID) (*ImpressionResponse, error) {
	impression, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toImpressionResponse(impression), nil
}

// List returns the filtered page and the total match count
func (s *ImpressionService) List(ctx context.Context, filter ImpressionListFilter) ([]ImpressionResponse, int64, error) {
	domainFilter := toImpressionFilter(filter)

	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	impressions, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ImpressionResponse, 0, len(impressions))
	for i := range impressions {
		responses = append(responses, *toImpressionResponse(&impressions[i]))
	}
	return responses, total, nil
}

// Update overwrites an impression and replaces its line item set in
// one transaction, then refetches bound views
func (s *ImpressionService) Update(ctx context.Context, id uuid.UUID, req UpdateImpressionRequest) (*ImpressionResponse, error) {
	impression, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	detalles, err := buildDetails(req.Detalles)
	if err != nil {
		return nil, err
	}

	if err := impression.Update(printing.UserKind(req.Usuario), fecha, detalles); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, impression); err != nil {
		return nil, err
	}

	s.notify(ctx)
	return toImpressionResponse(impression), nil
}

// UpdateAsync runs Update without blocking the caller
func (s *ImpressionService) UpdateAsync(ctx context.Context, id uuid.UUID, req UpdateImpressionRequest) <-chan MutationResult {
	out := make(chan MutationResult, 1)
	go func() {
		resp, err := s.Update(ctx, id, req)
		if err != nil {
			s.logger.Error("async impression update failed", zap.String("id", id.String()), zap.Error(err))
		}
		out <- MutationResult{Response: resp, Err: err}
		close(out)
	}()
	return out
}

// Delete removes an impression and its line items, then refetches
// bound views
func (s *ImpressionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

// DeleteAsync runs Delete without blocking the caller
func (s *ImpressionService) DeleteAsync(ctx context.Context, id uuid.UUID) <-chan MutationResult {
	out := make(chan MutationResult, 1)
	go func() {
		err := s.Delete(ctx, id)
		if err != nil {
			s.logger.Error("async impression delete failed", zap.String("id", id.String()), zap.Error(err))
		}
		out <- MutationResult{Err: err}
		close(out)
	}()
	return out
}

// Count implements listing.Fetcher over impressions
func (s *ImpressionService) Count(ctx context.Context, filter listing.Filter) (int64, error) {
	return s.repo.Count(ctx, fromListingFilter(filter))
}

// Page implements listing.Fetcher over impressions
func (s *ImpressionService) Page(ctx context.Context, filter listing.Filter) ([]ImpressionResponse, error) {
	impressions, err := s.repo.FindAll(ctx, fromListingFilter(filter))
	if err != nil {
		return nil, err
	}
	responses := make([]ImpressionResponse, 0, len(impressions))
	for i := range impressions {
		responses = append(responses, *toImpressionResponse(&impressions[i]))
	}
	return responses, nil
}

func (s *ImpressionService) notify(ctx context.Context) {
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

func buildDetails(reqs []PrintDetailRequest) ([]printing.PrintDetail, error) {
	detalles := make([]printing.PrintDetail, 0, len(reqs))
	for _, r := range reqs {
		d, err := printing.NewPrintDetail(printing.PrintKind(r.Tipo), r.Paginas, r.Costo)
		if err != nil {
			return nil, err
		}
		detalles = append(detalles, d)
	}
	return detalles, nil
}

func toImpressionFilter(f ImpressionListFilter) printing.ImpressionFilter {
	usuario := f.Usuario
	if usuario == "all" {
		usuario = ""
	}
	return printing.ImpressionFilter{
		Usuario:  usuario,
		Fecha:    valueobject.Date(f.Fecha),
		Month:    f.Month,
		Page:     f.Page,
		PageSize: f.PageSize,
	}
}

func fromListingFilter(f listing.Filter) printing.ImpressionFilter {
	usuario := f.Selector
	if usuario == "all" {
		usuario = ""
	}
	return printing.ImpressionFilter{
		Usuario:  usuario,
		Fecha:    f.Fecha,
		Month:    f.Month,
		Page:     f.Page,
		PageSize: f.PageSize,
	}
}

func toImpressionResponse(i *printing.Impression) *ImpressionResponse {
	detalles := make([]PrintDetailResponse, 0, len(i.Detalles))
	for _, d := range i.Detalles {
		detalles = append(detalles, PrintDetailResponse{
			Tipo:    d.Tipo.String(),
			Paginas: d.Paginas,
			Costo:   d.Costo,
		})
	}
	return &ImpressionResponse{
		ID:        i.ID,
		Usuario:   i.Usuario.String(),
		Fecha:     i.Fecha.String(),
		Detalles:  detalles,
		Total:     i.Total(),
		Paginas:   i.Pages(),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
