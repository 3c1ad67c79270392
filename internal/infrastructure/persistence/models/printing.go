package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/printing"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ImpressionModel is the persistence model for the Impression aggregate root.
type ImpressionModel struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Usuario   printing.UserKind  `gorm:"type:varchar(20);not null;index"`
	Fecha     string             `gorm:"type:varchar(10);not null;index"`
	Detalles  []PrintDetailModel `gorm:"foreignKey:ImpressionID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time          `gorm:"not null"`
	UpdatedAt time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ImpressionModel) TableName() string {
	return "impresiones"
}

// PrintDetailModel is the persistence model for an impression line item.
// Line items have no lifecycle of their own; edits replace the whole set.
type PrintDetailModel struct {
	ID           uint               `gorm:"primaryKey;autoIncrement"`
	ImpressionID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Tipo         printing.PrintKind `gorm:"type:varchar(10);not null"`
	Paginas      int                `gorm:"not null"`
	Costo        decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (PrintDetailModel) TableName() string {
	return "detalle_impresion"
}

// ToDomain converts the persistence model to a domain Impression entity.
func (m *ImpressionModel) ToDomain() *printing.Impression {
	detalles := make([]printing.PrintDetail, 0, len(m.Detalles))
	for _, d := range m.Detalles {
		detalles = append(detalles, printing.PrintDetail{
			Tipo:    d.Tipo,
			Paginas: d.Paginas,
			Costo:   d.Costo,
		})
	}
	return &printing.Impression{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Usuario:  m.Usuario,
		Fecha:    valueobject.Date(m.Fecha),
		Detalles: detalles,
	}
}

// FromDomain populates the persistence model from a domain Impression entity.
func (m *ImpressionModel) FromDomain(i *printing.Impression) {
	m.ID = i.ID
	m.Usuario = i.Usuario
	m.Fecha = i.Fecha.String()
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
	m.Detalles = make([]PrintDetailModel, 0, len(i.Detalles))
	for _, d := range i.Detalles {
		m.Detalles = append(m.Detalles, PrintDetailModel{
			ImpressionID: i.ID,
			Tipo:         d.Tipo,
			Paginas:      d.Paginas,
			Costo:        d.Costo,
		})
	}
}
