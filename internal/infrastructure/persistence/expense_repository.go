package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/finance"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns the filtered page ordered by fecha descending
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter finance.ExpenseFilter) ([]finance.Expense, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	query = r.applyFilter(query, filter)

	var rows []models.ExpenseModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	expenses := make([]finance.Expense, 0, len(rows))
	for i := range rows {
		expenses = append(expenses, *rows[i].ToDomain())
	}
	return expenses, nil
}

// Count returns the number of records matching the filter, ignoring
// pagination
func (r *GormExpenseRepository) Count(ctx context.Context, filter finance.ExpenseFilter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

// Create persists a new expense
func (r *GormExpenseRepository) Create(ctx context.Context, expense *finance.Expense) error {
	var model models.ExpenseModel
	model.FromDomain(expense)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// Update overwrites all expense fields
func (r *GormExpenseRepository) Update(ctx context.Context, expense *finance.Expense) error {
	var model models.ExpenseModel
	model.FromDomain(expense)
	model.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"categoria":   model.Categoria,
			"descripcion": model.Descripcion,
			"monto":       model.Monto,
			"fecha":       model.Fecha,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an expense by ID
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ExpenseModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies the shared predicates plus ordering and pagination
func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter finance.ExpenseFilter) *gorm.DB {
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
func (r *GormExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.ExpenseFilter) *gorm.DB {
	if filter.Categoria != "" {
		query = query.Where("categoria = ?", filter.Categoria)
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
