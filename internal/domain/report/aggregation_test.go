package report

import (
	"testing"
	"time"

	"github.com/printshop/backend/internal/domain/finance"
	"github.com/printshop/backend/internal/domain/printing"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImpression(t *testing.T, usuario printing.UserKind, fecha string, details ...printing.PrintDetail) printing.Impression {
	t.Helper()
	imp, err := printing.NewImpression(usuario, valueobject.Date(fecha), details)
	require.NoError(t, err)
	return *imp
}

func newDetail(t *testing.T, tipo printing.PrintKind, paginas int, costo float64) printing.PrintDetail {
	t.Helper()
	d, err := printing.NewPrintDetail(tipo, paginas, decimal.NewFromFloat(costo))
	require.NoError(t, err)
	return d
}

func newExpense(t *testing.T, categoria finance.ExpenseCategory, monto float64, fecha string) finance.Expense {
	t.Helper()
	e, err := finance.NewExpense(categoria, "test", decimal.NewFromFloat(monto), valueobject.Date(fecha))
	require.NoError(t, err)
	return *e
}

func TestMonthlySeries(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("always exactly 12 points", func(t *testing.T) {
		series := MonthlySeries(nil, nil, asOf)
		require.Len(t, series, 12)
		assert.Equal(t, "2023-07", series[0].Month)
		assert.Equal(t, "2024-06", series[11].Month)
		for _, p := range series {
			assert.Zero(t, p.Impresiones)
			assert.True(t, p.Ingresos.IsZero())
			assert.True(t, p.Gastos.IsZero())
		}
	})

	t.Run("records bucket by month prefix", func(t *testing.T) {
		impressions := []printing.Impression{
			newImpression(t, printing.UserKindAlumno, "2024-06-01", newDetail(t, printing.PrintKindBW, 10, 1.00)),
			newImpression(t, printing.UserKindMaestro, "2024-06-30", newDetail(t, printing.PrintKindColor, 5, 1.00)),
			newImpression(t, printing.UserKindAlumno, "2024-05-10", newDetail(t, printing.PrintKindBW, 3, 0.30)),
		}
		expenses := []finance.Expense{
			newExpense(t, finance.ExpenseCategoryPapel, 25.50, "2024-06-02"),
			newExpense(t, finance.ExpenseCategoryTinta, 40.00, "2023-07-20"),
		}
		series := MonthlySeries(impressions, expenses, asOf)
		require.Len(t, series, 12)

		june := series[11]
		assert.Equal(t, int64(2), june.Impresiones)
		assert.True(t, june.Ingresos.Equal(decimal.NewFromFloat(2.00)))
		assert.True(t, june.Gastos.Equal(decimal.NewFromFloat(25.50)))

		may := series[10]
		assert.Equal(t, int64(1), may.Impresiones)
		assert.True(t, may.Ingresos.Equal(decimal.NewFromFloat(0.30)))

		first := series[0]
		assert.True(t, first.Gastos.Equal(decimal.NewFromFloat(40.00)))
	})

	t.Run("records outside the window are ignored", func(t *testing.T) {
		impressions := []printing.Impression{
			newImpression(t, printing.UserKindAlumno, "2023-06-30", newDetail(t, printing.PrintKindBW, 1, 0.10)),
		}
		series := MonthlySeries(impressions, nil, asOf)
		for _, p := range series {
			assert.Zero(t, p.Impresiones)
		}
	})

	t.Run("labels are short Spanish month names", func(t *testing.T) {
		series := MonthlySeries(nil, nil, asOf)
		assert.Equal(t, "jul", series[0].Label)
		assert.Equal(t, "jun", series[11].Label)
	})
}

func TestExpensesByCategory(t *testing.T) {
	t.Run("sparse map with empty category bucketed as otros", func(t *testing.T) {
		expenses := []finance.Expense{
			newExpense(t, finance.ExpenseCategoryPapel, 25.50, "2024-02-01"),
			newExpense(t, finance.ExpenseCategoryPapel, 35.75, "2024-02-05"),
			{Monto: decimal.NewFromFloat(5), Fecha: "2024-02-09"}, // stored row without category
		}
		byCategory := ExpensesByCategory(expenses)
		require.Len(t, byCategory, 2)
		assert.Equal(t, int64(2), byCategory["papel"].Cantidad)
		assert.True(t, byCategory["papel"].Total.Equal(decimal.NewFromFloat(61.25)))
		assert.Equal(t, int64(1), byCategory["otros"].Cantidad)
		_, present := byCategory["tinta"]
		assert.False(t, present)
	})

	t.Run("empty input yields empty map", func(t *testing.T) {
		assert.Empty(t, ExpensesByCategory(nil))
	})
}

func TestPagesByKind(t *testing.T) {
	impressions := []printing.Impression{
		newImpression(t, printing.UserKindAlumno, "2024-01-15",
			newDetail(t, printing.PrintKindBW, 10, 1.00),
			newDetail(t, printing.PrintKindColor, 5, 1.00)),
		newImpression(t, printing.UserKindMaestro, "2024-01-20",
			newDetail(t, printing.PrintKindBW, 7, 0.70)),
	}
	byKind := PagesByKind(impressions)
	require.Len(t, byKind, 2)
	assert.Equal(t, int64(17), byKind["B/N"])
	assert.Equal(t, int64(5), byKind["Color"])

	t.Run("empty tipo buckets as Sin tipo", func(t *testing.T) {
		stored := []printing.Impression{
			{Detalles: []printing.PrintDetail{{Paginas: 4, Costo: decimal.NewFromFloat(0.40)}}},
		}
		assert.Equal(t, int64(4), PagesByKind(stored)["Sin tipo"])
	})
}

func TestCategoryBreakdown(t *testing.T) {
	t.Run("three expenses two categories", func(t *testing.T) {
		expenses := []finance.Expense{
			newExpense(t, finance.ExpenseCategoryPapel, 25.50, "2024-02-01"),
			newExpense(t, finance.ExpenseCategoryTinta, 45.00, "2024-02-03"),
			newExpense(t, finance.ExpenseCategoryPapel, 35.75, "2024-02-05"),
		}
		shares := CategoryBreakdown(expenses)
		require.Len(t, shares, 2)

		assert.Equal(t, "papel", shares[0].Categoria)
		assert.Equal(t, int64(2), shares[0].Cantidad)
		assert.True(t, shares[0].Total.Equal(decimal.NewFromFloat(61.25)))
		assert.True(t, shares[0].Porcentaje.Equal(decimal.NewFromFloat(57.65)), "got %s", shares[0].Porcentaje)

		assert.Equal(t, "tinta", shares[1].Categoria)
		assert.Equal(t, int64(1), shares[1].Cantidad)
		assert.True(t, shares[1].Total.Equal(decimal.NewFromFloat(45.00)))
		assert.True(t, shares[1].Porcentaje.Equal(decimal.NewFromFloat(42.35)), "got %s", shares[1].Porcentaje)
	})

	t.Run("percentages sum to 100 within rounding", func(t *testing.T) {
		expenses := []finance.Expense{
			newExpense(t, finance.ExpenseCategoryPapel, 10, "2024-02-01"),
			newExpense(t, finance.ExpenseCategoryTinta, 20, "2024-02-01"),
			newExpense(t, finance.ExpenseCategorySuministros, 30, "2024-02-01"),
		}
		sum := decimal.Zero
		for _, s := range CategoryBreakdown(expenses) {
			sum = sum.Add(s.Porcentaje)
		}
		diff := sum.Sub(decimal.NewFromInt(100)).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.02)), "sum = %s", sum)
	})

	t.Run("all percentages zero when grand total is zero", func(t *testing.T) {
		expenses := []finance.Expense{
			newExpense(t, finance.ExpenseCategoryPapel, 0, "2024-02-01"),
			newExpense(t, finance.ExpenseCategoryTinta, 0, "2024-02-01"),
		}
		for _, s := range CategoryBreakdown(expenses) {
			assert.True(t, s.Porcentaje.IsZero())
		}
	})
}

func TestComputePeriodTotals(t *testing.T) {
	impressions := []printing.Impression{
		newImpression(t, printing.UserKindAlumno, "2024-01-15",
			newDetail(t, printing.PrintKindBW, 10, 1.00),
			newDetail(t, printing.PrintKindColor, 5, 1.00)),
		newImpression(t, printing.UserKindMaestro, "2024-03-01",
			newDetail(t, printing.PrintKindBW, 2, 0.20)),
	}
	expenses := []finance.Expense{
		newExpense(t, finance.ExpenseCategoryPapel, 0.50, "2024-01-20"),
		newExpense(t, finance.ExpenseCategoryTinta, 9.00, "2024-04-01"),
	}

	t.Run("bounded range", func(t *testing.T) {
		totals := ComputePeriodTotals(impressions, expenses, "2024-01-01", "2024-01-31")
		assert.True(t, totals.Ingresos.Equal(decimal.NewFromFloat(2.00)))
		assert.True(t, totals.Gastos.Equal(decimal.NewFromFloat(0.50)))
		assert.True(t, totals.GananciaNeta.Equal(decimal.NewFromFloat(1.50)))
		assert.True(t, totals.Rentabilidad.Equal(decimal.NewFromFloat(75.00)))
		assert.Equal(t, int64(1), totals.Impresiones)
		assert.Equal(t, int64(15), totals.Paginas)
	})

	t.Run("open range covers everything", func(t *testing.T) {
		totals := ComputePeriodTotals(impressions, expenses, "", "")
		assert.True(t, totals.Ingresos.Equal(decimal.NewFromFloat(2.20)))
		assert.True(t, totals.Gastos.Equal(decimal.NewFromFloat(9.50)))
		assert.True(t, totals.GananciaNeta.Equal(decimal.NewFromFloat(-7.30)))
		assert.Equal(t, int64(2), totals.Impresiones)
	})

	t.Run("zero income yields zero margin", func(t *testing.T) {
		totals := ComputePeriodTotals(nil, expenses, "", "")
		assert.True(t, totals.Rentabilidad.IsZero())
		assert.True(t, totals.GananciaNeta.Equal(decimal.NewFromFloat(-9.50)))
	})

	t.Run("net profit is income minus expense exactly", func(t *testing.T) {
		totals := ComputePeriodTotals(impressions, expenses, "", "")
		assert.True(t, totals.GananciaNeta.Equal(totals.Ingresos.Sub(totals.Gastos)))
	})
}

func TestFlattenDetails(t *testing.T) {
	t.Run("one impression two line items", func(t *testing.T) {
		impressions := []printing.Impression{
			newImpression(t, printing.UserKindAlumno, "2024-01-15",
				newDetail(t, printing.PrintKindBW, 10, 1.00),
				newDetail(t, printing.PrintKindColor, 5, 1.00)),
		}
		rows := FlattenDetails(impressions)
		require.Len(t, rows, 2)
		for _, r := range rows {
			assert.Equal(t, valueobject.Date("2024-01-15"), r.Fecha)
			assert.Equal(t, "alumno", r.Usuario)
		}
		total := decimal.Zero
		for _, r := range rows {
			total = total.Add(r.Ingreso)
		}
		assert.True(t, total.Equal(decimal.NewFromFloat(2.00)))
	})

	t.Run("flattening is lossless on totals", func(t *testing.T) {
		impressions := []printing.Impression{
			newImpression(t, printing.UserKindAlumno, "2024-01-15",
				newDetail(t, printing.PrintKindBW, 10, 1.00),
				newDetail(t, printing.PrintKindColor, 5, 1.00)),
			newImpression(t, printing.UserKindMaestro, "2024-02-01",
				newDetail(t, printing.PrintKindColor, 3, 0.60)),
		}
		want := decimal.Zero
		for _, imp := range impressions {
			want = want.Add(imp.Total())
		}
		got := decimal.Zero
		for _, r := range FlattenDetails(impressions) {
			got = got.Add(r.Ingreso)
		}
		assert.True(t, got.Equal(want))
	})

	t.Run("sorted fecha descending, stable within a date", func(t *testing.T) {
		impressions := []printing.Impression{
			newImpression(t, printing.UserKindAlumno, "2024-01-10", newDetail(t, printing.PrintKindBW, 1, 0.10)),
			newImpression(t, printing.UserKindMaestro, "2024-03-05", newDetail(t, printing.PrintKindBW, 2, 0.20)),
			newImpression(t, printing.UserKindAlumno, "2024-03-05", newDetail(t, printing.PrintKindColor, 3, 0.60)),
		}
		rows := FlattenDetails(impressions)
		require.Len(t, rows, 3)
		assert.Equal(t, valueobject.Date("2024-03-05"), rows[0].Fecha)
		assert.Equal(t, "maestro", rows[0].Usuario)
		assert.Equal(t, "alumno", rows[1].Usuario)
		assert.Equal(t, valueobject.Date("2024-01-10"), rows[2].Fecha)
	})

	t.Run("impression without line items contributes no rows", func(t *testing.T) {
		stored := []printing.Impression{{Usuario: printing.UserKindAlumno, Fecha: "2024-01-01"}}
		assert.Empty(t, FlattenDetails(stored))
	})
}

func TestMonthlySummary(t *testing.T) {
	impressions := []printing.Impression{
		newImpression(t, printing.UserKindAlumno, "2024-01-15",
			newDetail(t, printing.PrintKindBW, 10, 1.00)),
		newImpression(t, printing.UserKindMaestro, "2024-01-20",
			newDetail(t, printing.PrintKindColor, 5, 1.00)),
		newImpression(t, printing.UserKindAlumno, "2024-03-05",
			newDetail(t, printing.PrintKindBW, 2, 0.20)),
	}
	summaries := MonthlySummary(impressions)
	require.Len(t, summaries, 2)

	assert.Equal(t, "2024-03", summaries[0].Month)
	assert.Equal(t, "marzo 2024", summaries[0].Label)
	assert.Equal(t, int64(1), summaries[0].Impresiones)

	assert.Equal(t, "2024-01", summaries[1].Month)
	assert.Equal(t, int64(2), summaries[1].Impresiones)
	assert.Equal(t, int64(15), summaries[1].Paginas)
	assert.True(t, summaries[1].Ingresos.Equal(decimal.NewFromFloat(2.00)))
}

func TestBuildDashboard(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("empty collections yield all-zero dashboard", func(t *testing.T) {
		dash := BuildDashboard(nil, nil, asOf)
		require.Len(t, dash.Series, 12)
		for _, p := range dash.Series {
			assert.Zero(t, p.Impresiones)
			assert.True(t, p.Ingresos.IsZero())
			assert.True(t, p.Gastos.IsZero())
		}
		assert.Zero(t, dash.Totales.Impresiones)
		assert.True(t, dash.Totales.Ingresos.IsZero())
		assert.True(t, dash.Totales.Gastos.IsZero())
		assert.True(t, dash.Totales.GananciaNeta.IsZero())
		assert.Empty(t, dash.GastosPorCategoria)
		assert.Empty(t, dash.PaginasPorTipo)
	})

	t.Run("totals sum the window points", func(t *testing.T) {
		impressions := []printing.Impression{
			newImpression(t, printing.UserKindAlumno, "2024-06-01", newDetail(t, printing.PrintKindBW, 10, 1.00)),
			newImpression(t, printing.UserKindAlumno, "2023-01-01", newDetail(t, printing.PrintKindBW, 10, 1.00)), // outside window
		}
		expenses := []finance.Expense{
			newExpense(t, finance.ExpenseCategoryPapel, 0.25, "2024-05-01"),
		}
		dash := BuildDashboard(impressions, expenses, asOf)
		assert.Equal(t, int64(1), dash.Totales.Impresiones)
		assert.True(t, dash.Totales.Ingresos.Equal(decimal.NewFromFloat(1.00)))
		assert.True(t, dash.Totales.Gastos.Equal(decimal.NewFromFloat(0.25)))
		assert.True(t, dash.Totales.GananciaNeta.Equal(decimal.NewFromFloat(0.75)))
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		impressions := []printing.Impression{
			newImpression(t, printing.UserKindAlumno, "2024-06-01", newDetail(t, printing.PrintKindBW, 10, 1.00)),
		}
		expenses := []finance.Expense{
			newExpense(t, finance.ExpenseCategoryPapel, 0.25, "2024-05-01"),
		}
		first := BuildDashboard(impressions, expenses, asOf)
		second := BuildDashboard(impressions, expenses, asOf)
		assert.Equal(t, first, second)
	})
}
