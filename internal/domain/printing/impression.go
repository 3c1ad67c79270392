package printing

import (
	"fmt"

	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// UserKind identifies who a print job was made for
type UserKind string

const (
	UserKindAlumno  UserKind = "alumno"  // student
	UserKindMaestro UserKind = "maestro" // teacher
)

// IsValid checks if the kind is a valid UserKind
func (u UserKind) IsValid() bool {
	switch u {
	case UserKindAlumno, UserKindMaestro:
		return true
	}
	return false
}

// String returns the string representation of UserKind
func (u UserKind) String() string {
	return string(u)
}

// DisplayName returns a human-readable name for the user kind
func (u UserKind) DisplayName() string {
	switch u {
	case UserKindAlumno:
		return "Alumno"
	case UserKindMaestro:
		return "Maestro"
	default:
		return string(u)
	}
}

// PrintKind identifies the kind of print for a line item
type PrintKind string

const (
	PrintKindBW    PrintKind = "B/N"
	PrintKindColor PrintKind = "Color"
)

// UnknownPrintKind is the bucket used when a stored line item carries no kind.
const UnknownPrintKind = "Sin tipo"

// IsValid checks if the kind is a valid PrintKind
func (k PrintKind) IsValid() bool {
	switch k {
	case PrintKindBW, PrintKindColor:
		return true
	}
	return false
}

// String returns the string representation of PrintKind
func (k PrintKind) String() string {
	return string(k)
}

// UnitPrice returns the per-page price for the print kind
func (k PrintKind) UnitPrice() decimal.Decimal {
	switch k {
	case PrintKindColor:
		return decimal.NewFromFloat(0.20)
	default:
		return decimal.NewFromFloat(0.10)
	}
}

// MinDetailCost is the lowest cost accepted for a single line item.
var MinDetailCost = decimal.NewFromFloat(0.10)

// PrintDetail is a line item of an Impression. It has no lifecycle of its
// own: editing the parent replaces the whole detail set.
type PrintDetail struct {
	Tipo    PrintKind       `json:"tipo"`
	Paginas int             `json:"paginas"`
	Costo   decimal.Decimal `json:"costo"`
}

// NewPrintDetail creates a line item, deriving the cost from the page
// count when none is given. An explicit cost below the minimum is rejected.
func NewPrintDetail(tipo PrintKind, paginas int, costo decimal.Decimal) (PrintDetail, error) {
	if !tipo.IsValid() {
		return PrintDetail{}, shared.NewDomainError("INVALID_PRINT_KIND", fmt.Sprintf("Print kind %q is not valid", tipo))
	}
	if paginas <= 0 {
		return PrintDetail{}, shared.NewDomainError("INVALID_PAGES", "Page count must be positive")
	}
	if costo.IsZero() {
		costo = DefaultCost(tipo, paginas)
	}
	if costo.LessThan(MinDetailCost) {
		return PrintDetail{}, shared.NewDomainError("INVALID_COST", "Cost must be at least 0.10")
	}
	return PrintDetail{Tipo: tipo, Paginas: paginas, Costo: costo}, nil
}

// DefaultCost computes paginas × unit price for the kind, rounded to cents
func DefaultCost(tipo PrintKind, paginas int) decimal.Decimal {
	return tipo.UnitPrice().Mul(decimal.NewFromInt(int64(paginas))).Round(2)
}

// Impression is a billable print job aggregate root. It owns an ordered
// set of PrintDetail line items; its income is the sum of their costs.
type Impression struct {
	shared.BaseEntity
	Usuario  UserKind         `json:"usuario"`
	Fecha    valueobject.Date `json:"fecha"`
	Detalles []PrintDetail    `json:"detalles"`
}

// NewImpression creates a new impression. An empty fecha defaults to the
// current date.
func NewImpression(usuario UserKind, fecha valueobject.Date, detalles []PrintDetail) (*Impression, error) {
	if !usuario.IsValid() {
		return nil, shared.NewDomainError("INVALID_USER_KIND", fmt.Sprintf("User kind %q is not valid", usuario))
	}
	if fecha.IsZero() {
		fecha = valueobject.Today()
	} else if _, err := valueobject.NewDate(fecha.String()); err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD form")
	}
	if len(detalles) == 0 {
		return nil, shared.NewDomainError("INVALID_DETAILS", "An impression needs at least one line item")
	}

	return &Impression{
		BaseEntity: shared.NewBaseEntity(),
		Usuario:    usuario,
		Fecha:      fecha,
		Detalles:   detalles,
	}, nil
}

// Update overwrites the impression fields and replaces the whole line
// item set.
func (i *Impression) Update(usuario UserKind, fecha valueobject.Date, detalles []PrintDetail) error {
	if !usuario.IsValid() {
		return shared.NewDomainError("INVALID_USER_KIND", fmt.Sprintf("User kind %q is not valid", usuario))
	}
	if fecha.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	if _, err := valueobject.NewDate(fecha.String()); err != nil {
		return shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD form")
	}
	if len(detalles) == 0 {
		return shared.NewDomainError("INVALID_DETAILS", "An impression needs at least one line item")
	}

	i.Usuario = usuario
	i.Fecha = fecha
	i.Detalles = detalles
	return nil
}

// Total returns the income of the impression: the sum of its line item costs
func (i *Impression) Total() decimal.Decimal {
	total := decimal.Zero
	for _, d := range i.Detalles {
		total = total.Add(d.Costo)
	}
	return total
}

// Pages returns the total page count across all line items
func (i *Impression) Pages() int {
	pages := 0
	for _, d := range i.Detalles {
		pages += d.Paginas
	}
	return pages
}
