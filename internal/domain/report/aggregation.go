package report

import (
	"sort"
	"time"

	"github.com/printshop/backend/internal/domain/finance"
	"github.com/printshop/backend/internal/domain/printing"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// The aggregation engine folds already-fetched record collections into
// read models. Every function here is pure and deterministic for a
// given input and as-of date; store access belongs to the repositories.

// MonthPoint is one point of the trailing 12-month series
type MonthPoint struct {
	Month       string          `json:"month"` // YYYY-MM
	Label       string          `json:"label"` // short Spanish month name
	Impresiones int64           `json:"impresiones"`
	Ingresos    decimal.Decimal `json:"ingresos"`
	Gastos      decimal.Decimal `json:"gastos"`
}

// CategoryStat accumulates expense records of one category
type CategoryStat struct {
	Cantidad int64           `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
}

// CategoryShare is a breakdown entry with its share of the grand total
type CategoryShare struct {
	Categoria  string          `json:"categoria"`
	Cantidad   int64           `json:"cantidad"`
	Total      decimal.Decimal `json:"total"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
}

// PeriodTotals summarizes income and expense over a date range
type PeriodTotals struct {
	Ingresos     decimal.Decimal `json:"ingresos"`
	Gastos       decimal.Decimal `json:"gastos"`
	GananciaNeta decimal.Decimal `json:"gananciaNeta"`
	Rentabilidad decimal.Decimal `json:"rentabilidad"` // net / income * 100
	Impresiones  int64           `json:"impresiones"`
	Paginas      int64           `json:"paginas"`
}

// DetailRow is one flattened line item carrying its parent's fields
type DetailRow struct {
	Fecha   valueobject.Date `json:"fecha"`
	Usuario string           `json:"usuario"`
	Tipo    string           `json:"tipo"`
	Paginas int              `json:"paginas"`
	Ingreso decimal.Decimal  `json:"ingreso"`
}

// MonthSummary is a per-month rollup of the impression collection
type MonthSummary struct {
	Month       string          `json:"month"` // YYYY-MM
	Label       string          `json:"label"`
	Impresiones int64           `json:"impresiones"`
	Paginas     int64           `json:"paginas"`
	Ingresos    decimal.Decimal `json:"ingresos"`
}

// Totals is the dashboard grand-total block over the 12-month window
type Totals struct {
	Impresiones  int64           `json:"impresiones"`
	Ingresos     decimal.Decimal `json:"ingresos"`
	Gastos       decimal.Decimal `json:"gastos"`
	GananciaNeta decimal.Decimal `json:"gananciaNeta"`
}

// Dashboard combines the series, both breakdowns and the window totals
type Dashboard struct {
	Series             []MonthPoint            `json:"series"`
	GastosPorCategoria map[string]CategoryStat `json:"gastosPorCategoria"`
	PaginasPorTipo     map[string]int64        `json:"paginasPorTipo"`
	Totales            Totals                  `json:"totales"`
}

var hundred = decimal.NewFromInt(100)

// MonthlySeries builds exactly 12 points, from eleven months before the
// as-of date through the as-of month. Records are matched to a point by
// the YYYY-MM prefix of their fecha. Points with no records carry zeros.
func MonthlySeries(impressions []printing.Impression, expenses []finance.Expense, asOf time.Time) []MonthPoint {
	series := make([]MonthPoint, 0, 12)
	first := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)

	for i := 0; i < 12; i++ {
		m := first.AddDate(0, i, 0)
		prefix := m.Format("2006-01")
		point := MonthPoint{
			Month:    prefix,
			Label:    ShortMonthName(m.Month()),
			Ingresos: decimal.Zero,
			Gastos:   decimal.Zero,
		}
		for _, imp := range impressions {
			if imp.Fecha.Month() == prefix {
				point.Impresiones++
				point.Ingresos = point.Ingresos.Add(imp.Total())
			}
		}
		for _, e := range expenses {
			if e.Fecha.Month() == prefix {
				point.Gastos = point.Gastos.Add(e.Monto)
			}
		}
		series = append(series, point)
	}
	return series
}

// ExpensesByCategory folds expenses into a sparse categoria map. A
// record without a categoria lands in the "otros" bucket; absent keys
// mean zero.
func ExpensesByCategory(expenses []finance.Expense) map[string]CategoryStat {
	byCategory := make(map[string]CategoryStat)
	for _, e := range expenses {
		key := e.Categoria.String()
		if key == "" {
			key = finance.ExpenseCategoryOtros.String()
		}
		stat := byCategory[key]
		stat.Cantidad++
		stat.Total = stat.Total.Add(e.Monto)
		byCategory[key] = stat
	}
	return byCategory
}

// PagesByKind folds line items into a sparse tipo map of cumulative
// page counts. A line item without a tipo lands in the "Sin tipo"
// bucket.
func PagesByKind(impressions []printing.Impression) map[string]int64 {
	byKind := make(map[string]int64)
	for _, imp := range impressions {
		for _, d := range imp.Detalles {
			key := d.Tipo.String()
			if key == "" {
				key = printing.UnknownPrintKind
			}
			byKind[key] += int64(d.Paginas)
		}
	}
	return byKind
}

// CategoryBreakdown returns the category stats sorted by total
// descending, each with its percentage of the grand total rounded to
// two decimals. Every percentage is zero when the grand total is zero.
func CategoryBreakdown(expenses []finance.Expense) []CategoryShare {
	byCategory := ExpensesByCategory(expenses)

	grand := decimal.Zero
	for _, stat := range byCategory {
		grand = grand.Add(stat.Total)
	}

	shares := make([]CategoryShare, 0, len(byCategory))
	for categoria, stat := range byCategory {
		share := CategoryShare{
			Categoria:  categoria,
			Cantidad:   stat.Cantidad,
			Total:      stat.Total,
			Porcentaje: decimal.Zero,
		}
		if grand.IsPositive() {
			share.Porcentaje = stat.Total.Div(grand).Mul(hundred).Round(2)
		}
		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Total.Equal(shares[j].Total) {
			return shares[i].Total.GreaterThan(shares[j].Total)
		}
		return shares[i].Categoria < shares[j].Categoria
	})
	return shares
}

// ComputePeriodTotals sums income and expense over the inclusive date
// range [from, to]. A zero endpoint leaves that side of the range open,
// so two zero endpoints cover every record. Rentabilidad is zero when
// there is no income, never a division error.
func ComputePeriodTotals(impressions []printing.Impression, expenses []finance.Expense, from, to valueobject.Date) PeriodTotals {
	totals := PeriodTotals{
		Ingresos:     decimal.Zero,
		Gastos:       decimal.Zero,
		GananciaNeta: decimal.Zero,
		Rentabilidad: decimal.Zero,
	}

	for _, imp := range impressions {
		if !inRange(imp.Fecha, from, to) {
			continue
		}
		totals.Impresiones++
		totals.Paginas += int64(imp.Pages())
		totals.Ingresos = totals.Ingresos.Add(imp.Total())
	}
	for _, e := range expenses {
		if !inRange(e.Fecha, from, to) {
			continue
		}
		totals.Gastos = totals.Gastos.Add(e.Monto)
	}

	totals.GananciaNeta = totals.Ingresos.Sub(totals.Gastos)
	if totals.Ingresos.IsPositive() {
		totals.Rentabilidad = totals.GananciaNeta.Div(totals.Ingresos).Mul(hundred).Round(2)
	}
	return totals
}

// inRange relies on the lexicographic ordering of YYYY-MM-DD strings
func inRange(fecha, from, to valueobject.Date) bool {
	if !from.IsZero() && fecha < from {
		return false
	}
	if !to.IsZero() && fecha > to {
		return false
	}
	return true
}

// FlattenDetails expands each impression into one row per line item,
// carrying the parent's usuario and fecha. Rows are sorted by fecha
// descending; rows with equal dates keep their encounter order.
func FlattenDetails(impressions []printing.Impression) []DetailRow {
	rows := make([]DetailRow, 0, len(impressions))
	for _, imp := range impressions {
		for _, d := range imp.Detalles {
			tipo := d.Tipo.String()
			if tipo == "" {
				tipo = printing.UnknownPrintKind
			}
			rows = append(rows, DetailRow{
				Fecha:   imp.Fecha,
				Usuario: imp.Usuario.String(),
				Tipo:    tipo,
				Paginas: d.Paginas,
				Ingreso: d.Costo,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Fecha > rows[j].Fecha
	})
	return rows
}

// MonthlySummary rolls the impression collection up per distinct
// calendar month, newest first.
func MonthlySummary(impressions []printing.Impression) []MonthSummary {
	byMonth := make(map[string]*MonthSummary)
	for _, imp := range impressions {
		month := imp.Fecha.Month()
		summary, ok := byMonth[month]
		if !ok {
			summary = &MonthSummary{
				Month:    month,
				Label:    MonthLabel(month),
				Ingresos: decimal.Zero,
			}
			byMonth[month] = summary
		}
		summary.Impresiones++
		summary.Paginas += int64(imp.Pages())
		summary.Ingresos = summary.Ingresos.Add(imp.Total())
	}

	summaries := make([]MonthSummary, 0, len(byMonth))
	for _, s := range byMonth {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Month > summaries[j].Month
	})
	return summaries
}

// BuildDashboard assembles the 12-month series, both breakdowns and the
// grand totals over the window. The impression count in the totals sums
// the window points, so records outside the window do not count.
func BuildDashboard(impressions []printing.Impression, expenses []finance.Expense, asOf time.Time) Dashboard {
	series := MonthlySeries(impressions, expenses, asOf)

	totals := Totals{
		Ingresos: decimal.Zero,
		Gastos:   decimal.Zero,
	}
	for _, p := range series {
		totals.Impresiones += p.Impresiones
		totals.Ingresos = totals.Ingresos.Add(p.Ingresos)
		totals.Gastos = totals.Gastos.Add(p.Gastos)
	}
	totals.GananciaNeta = totals.Ingresos.Sub(totals.Gastos)

	return Dashboard{
		Series:             series,
		GastosPorCategoria: ExpensesByCategory(expenses),
		PaginasPorTipo:     PagesByKind(impressions),
		Totales:            totals,
	}
}
