package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/printing"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormImpressionRepository implements printing.ImpressionRepository using GORM
type GormImpressionRepository struct {
	db *gorm.DB
}

// NewGormImpressionRepository creates a new GormImpressionRepository
func NewGormImpressionRepository(db *gorm.DB) *GormImpressionRepository {
	return &GormImpressionRepository{db: db}
}

// FindByID finds an impression by ID with its line items
func (r *GormImpressionRepository) FindByID(ctx context.Context, id uuid.UUID) (*printing.Impression, error) {
	var model models.ImpressionModel
	err := r.db.WithContext(ctx).
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find impression: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns the filtered page ordered by fecha descending, line
// items preloaded in insertion order
func (r *GormImpressionRepository) FindAll(ctx context.Context, filter printing.ImpressionFilter) ([]printing.Impression, error) {
	query := r.db.WithContext(ctx).Model(&models.ImpressionModel{}).
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
	query = r.applyFilter(query, filter)

	var rows []models.ImpressionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list impressions: %w", err)
	}

	impressions := make([]printing.Impression, 0, len(rows))
	for i := range rows {
		impressions = append(impressions, *rows[i].ToDomain())
	}
	return impressions, nil
}

// Count returns the number of records matching the filter, ignoring
// pagination
func (r *GormImpressionRepository) Count(ctx context.Context, filter printing.ImpressionFilter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ImpressionModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count impressions: %w", err)
	}
	return count, nil
}

// Create persists a new impression together with its line items
func (r *GormImpressionRepository) Create(ctx context.Context, impression *printing.Impression) error {
	var model models.ImpressionModel
	model.FromDomain(impression)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to create impression: %w", err)
	}
	return nil
}

// Update overwrites the parent fields and replaces the whole line item
// set. Both steps run in one transaction so a failure leaves the stored
// set untouched.
func (r *GormImpressionRepository) Update(ctx context.Context, impression *printing.Impression) error {
	var model models.ImpressionModel
	model.FromDomain(impression)
	model.UpdatedAt = time.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ImpressionModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]any{
				"usuario":    model.Usuario,
				"fecha":      model.Fecha,
				"updated_at": model.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update impression: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if err := tx.Where("impression_id = ?", model.ID).
			Delete(&models.PrintDetailModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete line items: %w", err)
		}
		if len(model.Detalles) > 0 {
			if err := tx.Create(&model.Detalles).Error; err != nil {
				return fmt.Errorf("failed to insert line items: %w", err)
			}
		}
		return nil
	})
}

// Delete removes an impression; its line items go with it
func (r *GormImpressionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// sqlite test databases do not enforce the cascade, so the
		// children are removed explicitly
		if err := tx.Where("impression_id = ?", id).
			Delete(&models.PrintDetailModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete line items: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.ImpressionModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete impression: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies the shared predicates plus ordering and pagination
func (r *GormImpressionRepository) applyFilter(query *gorm.DB, filter printing.ImpressionFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = query.Order("fecha DESC, id")
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}
	return query
}

// applyFilterWithoutPagination applies the predicates shared by the
// count query and the page query
func (r *GormImpressionRepository) applyFilterWithoutPagination(query *gorm.DB, filter printing.ImpressionFilter) *gorm.DB {
	if filter.Usuario != "" {
		query = query.Where("usuario = ?", filter.Usuario)
	}
	switch {
	case !filter.Fecha.IsZero():
		query = query.Where("fecha = ?", filter.Fecha.String())
	case filter.Month != "":
		if t, err := time.Parse("2006-01", filter.Month); err == nil {
			first, last := valueobject.MonthBounds(t)
			query = query.Where("fecha >= ? AND fecha <= ?", first.String(), last.String())
		}
	}
	return query
}
