package finance

import (
	"fmt"

	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the category of an operating expense
type ExpenseCategory string

const (
	ExpenseCategoryPapel         ExpenseCategory = "papel"
	ExpenseCategoryTinta         ExpenseCategory = "tinta"
	ExpenseCategoryMantenimiento ExpenseCategory = "mantenimiento"
	ExpenseCategoryReparacion    ExpenseCategory = "reparacion"
	ExpenseCategorySuministros   ExpenseCategory = "suministros"
	ExpenseCategoryOtros         ExpenseCategory = "otros"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryPapel, ExpenseCategoryTinta, ExpenseCategoryMantenimiento,
		ExpenseCategoryReparacion, ExpenseCategorySuministros, ExpenseCategoryOtros:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the category
func (c ExpenseCategory) DisplayName() string {
	switch c {
	case ExpenseCategoryPapel:
		return "Papel"
	case ExpenseCategoryTinta:
		return "Tinta"
	case ExpenseCategoryMantenimiento:
		return "Mantenimiento"
	case ExpenseCategoryReparacion:
		return "Reparación"
	case ExpenseCategorySuministros:
		return "Suministros"
	case ExpenseCategoryOtros:
		return "Otros"
	default:
		return string(c)
	}
}

// Expense represents a categorized operating cost record
type Expense struct {
	shared.BaseEntity
	Categoria   ExpenseCategory  `json:"categoria"`
	Descripcion string           `json:"descripcion"`
	Monto       decimal.Decimal  `json:"monto"`
	Fecha       valueobject.Date `json:"fecha"`
}

// NewExpense creates a new expense record. An empty fecha defaults to the
// current date.
func NewExpense(categoria ExpenseCategory, descripcion string, monto decimal.Decimal, fecha valueobject.Date) (*Expense, error) {
	if !categoria.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Expense category %q is not valid", categoria))
	}
	if descripcion == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(descripcion) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if monto.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if fecha.IsZero() {
		fecha = valueobject.Today()
	} else if _, err := valueobject.NewDate(fecha.String()); err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD form")
	}

	return &Expense{
		BaseEntity:  shared.NewBaseEntity(),
		Categoria:   categoria,
		Descripcion: descripcion,
		Monto:       monto,
		Fecha:       fecha,
	}, nil
}

// Update overwrites all expense fields
func (e *Expense) Update(categoria ExpenseCategory, descripcion string, monto decimal.Decimal, fecha valueobject.Date) error {
	if !categoria.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Expense category %q is not valid", categoria))
	}
	if descripcion == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(descripcion) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if monto.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if fecha.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	if _, err := valueobject.NewDate(fecha.String()); err != nil {
		return shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD form")
	}

	e.Categoria = categoria
	e.Descripcion = descripcion
	e.Monto = monto
	e.Fecha = fecha
	return nil
}
