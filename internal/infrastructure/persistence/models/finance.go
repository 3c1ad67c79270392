package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/finance"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense entity.
type ExpenseModel struct {
	ID          uuid.UUID               `gorm:"type:uuid;primaryKey"`
	Categoria   finance.ExpenseCategory `gorm:"type:varchar(20);not null;index"`
	Descripcion string                  `gorm:"type:varchar(500);not null"`
	Monto       decimal.Decimal         `gorm:"type:decimal(12,2);not null"`
	Fecha       string                  `gorm:"type:varchar(10);not null;index"`
	CreatedAt   time.Time               `gorm:"not null"`
	UpdatedAt   time.Time               `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "gastos"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Categoria:   m.Categoria,
		Descripcion: m.Descripcion,
		Monto:       m.Monto,
		Fecha:       valueobject.Date(m.Fecha),
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.ID = e.ID
	m.Categoria = e.Categoria
	m.Descripcion = e.Descripcion
	m.Monto = e.Monto
	m.Fecha = e.Fecha.String()
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}
