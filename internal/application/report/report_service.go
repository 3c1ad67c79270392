package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/printshop/backend/internal/domain/finance"
	"github.com/printshop/backend/internal/domain/printing"
	"github.com/printshop/backend/internal/domain/report"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Mode selects the period a report covers
type Mode string

const (
	ModeMes     Mode = "mes"     // one calendar month
	ModePeriodo Mode = "periodo" // explicit date range
	ModeTotal   Mode = "total"   // every record
)

// PDFRenderer turns an assembled report into a finished document
type PDFRenderer interface {
	Render(ctx context.Context, template string, data any) ([]byte, error)
}

// Request carries the period selection of a report query
type Request struct {
	Mode  Mode   `form:"mode"`
	Month string `form:"month"` // YYYY-MM, mes mode
	From  string `form:"from"`  // YYYY-MM-DD, periodo mode
	To    string `form:"to"`    // YYYY-MM-DD, periodo mode
}

// GastosReport is the expense report payload
type GastosReport struct {
	Periodo     string                 `json:"periodo"`
	GeneradoEn  time.Time              `json:"generado_en"`
	Filename    string                 `json:"filename"`
	TotalGastos decimal.Decimal        `json:"total_gastos"`
	Cantidad    int64                  `json:"cantidad"`
	Categorias  []report.CategoryShare `json:"categorias"`
}

// ImpresionesReport is the impression report payload
type ImpresionesReport struct {
	Periodo       string                `json:"periodo"`
	GeneradoEn    time.Time             `json:"generado_en"`
	Filename      string                `json:"filename"`
	Impresiones   int64                 `json:"impresiones"`
	Paginas       int64                 `json:"paginas"`
	Ingresos      decimal.Decimal       `json:"ingresos"`
	Filas         []report.DetailRow    `json:"filas"`
	ResumenPorMes []report.MonthSummary `json:"resumen_por_mes,omitempty"`
}

// GeneralReport is the combined income/expense report payload
type GeneralReport struct {
	Periodo             string          `json:"periodo"`
	GeneradoEn          time.Time       `json:"generado_en"`
	Filename            string          `json:"filename"`
	TotalIngresos       decimal.Decimal `json:"total_ingresos"`
	TotalGastos         decimal.Decimal `json:"total_gastos"`
	GananciaNeta        decimal.Decimal `json:"ganancia_neta"`
	Rentabilidad        decimal.Decimal `json:"rentabilidad"`
	TotalImpresiones    int64           `json:"total_impresiones"`
	TotalPaginas        int64           `json:"total_paginas"`
	GastosPapel         decimal.Decimal `json:"gastos_papel"`
	GastosTinta         decimal.Decimal `json:"gastos_tinta"`
	GastosMantenimiento decimal.Decimal `json:"gastos_mantenimiento"`
	OtrosGastos         decimal.Decimal `json:"otros_gastos"`
	Rentable            bool            `json:"rentable"`
}

// Service assembles report payloads from the stored collections
type Service struct {
	impressions printing.ImpressionRepository
	expenses    finance.ExpenseRepository
	renderer    PDFRenderer
	now         func() time.Time
}

// NewService creates a report Service using the wall clock
func NewService(impressions printing.ImpressionRepository, expenses finance.ExpenseRepository) *Service {
	return &Service{
		impressions: impressions,
		expenses:    expenses,
		now:         time.Now,
	}
}

// WithRenderer attaches the PDF renderer used by the export methods
func (s *Service) WithRenderer(r PDFRenderer) *Service {
	s.renderer = r
	return s
}

// WithClock replaces the clock, for deterministic reports in tests
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ErrPeriodRequired is returned when an export lacks its date parameter
var ErrPeriodRequired = shared.NewDomainError("VALIDATION_REQUIRED", "The selected report mode needs its date parameter")

// period resolves a request into an inclusive date range plus the
// human-readable label and the filename token for that range
type period struct {
	from  valueobject.Date
	to    valueobject.Date
	label string
	token string
}

func (s *Service) resolvePeriod(req Request) (period, error) {
	switch req.Mode {
	case ModeMes, "":
		if req.Month == "" {
			return period{}, ErrPeriodRequired
		}
		return s.monthPeriod(req.Month)
	case ModePeriodo:
		if req.From == "" || req.To == "" {
			return period{}, ErrPeriodRequired
		}
		from, err := valueobject.NewDate(req.From)
		if err != nil {
			return period{}, shared.NewDomainError("INVALID_DATE", "From date must be in YYYY-MM-DD form")
		}
		to, err := valueobject.NewDate(req.To)
		if err != nil {
			return period{}, shared.NewDomainError("INVALID_DATE", "To date must be in YYYY-MM-DD form")
		}
		return period{
			from:  from,
			to:    to,
			label: fmt.Sprintf("%s al %s", displayDate(from), displayDate(to)),
			token: fmt.Sprintf("%s_%s", fileDate(from), fileDate(to)),
		}, nil
	case ModeTotal:
		return period{label: "Todos los períodos", token: "Total"}, nil
	default:
		return period{}, shared.NewDomainError("INVALID_MODE", fmt.Sprintf("Report mode %q is not valid", req.Mode))
	}
}

func (s *Service) monthPeriod(month string) (period, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return period{}, shared.NewDomainError("INVALID_DATE", "Month must be in YYYY-MM form")
	}
	from, to := valueobject.MonthBounds(t)
	label := report.MonthLabel(month)
	return period{
		from:  from,
		to:    to,
		label: label,
		token: strings.ReplaceAll(label, " ", "_"),
	}, nil
}

// Gastos assembles the expense report for the requested period
func (s *Service) Gastos(ctx context.Context, req Request) (*GastosReport, error) {
	p, err := s.resolvePeriod(req)
	if err != nil {
		return nil, err
	}
	expenses, err := s.allExpenses(ctx)
	if err != nil {
		return nil, err
	}

	inRange := filterExpenses(expenses, p.from, p.to)
	total := decimal.Zero
	for _, e := range inRange {
		total = total.Add(e.Monto)
	}

	generated := s.now()
	return &GastosReport{
		Periodo:     p.label,
		GeneradoEn:  generated,
		Filename:    filename("Gastos", p.token, generated),
		TotalGastos: total,
		Cantidad:    int64(len(inRange)),
		Categorias:  report.CategoryBreakdown(inRange),
	}, nil
}

// Impresiones assembles the impression report. Total mode additionally
// carries the per-month rollup.
func (s *Service) Impresiones(ctx context.Context, req Request) (*ImpresionesReport, error) {
	if req.Mode == ModePeriodo {
		return nil, shared.NewDomainError("INVALID_MODE", "The impression report covers one month or every record")
	}
	p, err := s.resolvePeriod(req)
	if err != nil {
		return nil, err
	}
	impressions, err := s.allImpressions(ctx)
	if err != nil {
		return nil, err
	}

	inRange := filterImpressions(impressions, p.from, p.to)
	totals := report.ComputePeriodTotals(inRange, nil, "", "")

	out := &ImpresionesReport{
		Periodo:     p.label,
		GeneradoEn:  s.now(),
		Impresiones: totals.Impresiones,
		Paginas:     totals.Paginas,
		Ingresos:    totals.Ingresos,
		Filas:       report.FlattenDetails(inRange),
	}
	token := p.token
	if req.Mode == ModeTotal {
		token = "Todos_los_meses"
		out.ResumenPorMes = report.MonthlySummary(inRange)
	}
	out.Filename = filename("Impresiones", token, out.GeneradoEn)
	return out, nil
}

// General assembles the combined report for one month. An empty month
// means the current month.
func (s *Service) General(ctx context.Context, req Request) (*GeneralReport, error) {
	month := req.Month
	if month == "" {
		month = s.now().Format("2006-01")
	}
	p, err := s.monthPeriod(month)
	if err != nil {
		return nil, err
	}

	impressions, err := s.allImpressions(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.allExpenses(ctx)
	if err != nil {
		return nil, err
	}

	inRange := filterExpenses(expenses, p.from, p.to)
	totals := report.ComputePeriodTotals(filterImpressions(impressions, p.from, p.to), inRange, "", "")

	papel := decimal.Zero
	tinta := decimal.Zero
	mantenimiento := decimal.Zero
	otros := decimal.Zero
	for _, e := range inRange {
		switch e.Categoria {
		case finance.ExpenseCategoryPapel:
			papel = papel.Add(e.Monto)
		case finance.ExpenseCategoryTinta:
			tinta = tinta.Add(e.Monto)
		case finance.ExpenseCategoryMantenimiento:
			mantenimiento = mantenimiento.Add(e.Monto)
		default:
			otros = otros.Add(e.Monto)
		}
	}

	generated := s.now()
	return &GeneralReport{
		Periodo:             p.label,
		GeneradoEn:          generated,
		Filename:            filename("General", p.token, generated),
		TotalIngresos:       totals.Ingresos,
		TotalGastos:         totals.Gastos,
		GananciaNeta:        totals.GananciaNeta,
		Rentabilidad:        totals.Rentabilidad,
		TotalImpresiones:    totals.Impresiones,
		TotalPaginas:        totals.Paginas,
		GastosPapel:         papel,
		GastosTinta:         tinta,
		GastosMantenimiento: mantenimiento,
		OtrosGastos:         otros,
		Rentable:            !totals.GananciaNeta.IsNegative(),
	}, nil
}

// ExportGastosPDF renders the expense report and returns its filename
// and content
func (s *Service) ExportGastosPDF(ctx context.Context, req Request) (string, []byte, error) {
	rep, err := s.Gastos(ctx, req)
	if err != nil {
		return "", nil, err
	}
	content, err := s.render(ctx, "gastos", rep)
	if err != nil {
		return "", nil, err
	}
	return rep.Filename, content, nil
}

// ExportImpresionesPDF renders the impression report and returns its
// filename and content
func (s *Service) ExportImpresionesPDF(ctx context.Context, req Request) (string, []byte, error) {
	rep, err := s.Impresiones(ctx, req)
	if err != nil {
		return "", nil, err
	}
	content, err := s.render(ctx, "impresiones", rep)
	if err != nil {
		return "", nil, err
	}
	return rep.Filename, content, nil
}

// ExportGeneralPDF renders the combined report and returns its filename
// and content
func (s *Service) ExportGeneralPDF(ctx context.Context, req Request) (string, []byte, error) {
	rep, err := s.General(ctx, req)
	if err != nil {
		return "", nil, err
	}
	content, err := s.render(ctx, "general", rep)
	if err != nil {
		return "", nil, err
	}
	return rep.Filename, content, nil
}

func (s *Service) render(ctx context.Context, template string, data any) ([]byte, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError("PDF_UNAVAILABLE", "PDF rendering is not configured")
	}
	return s.renderer.Render(ctx, template, data)
}

func (s *Service) allImpressions(ctx context.Context) ([]printing.Impression, error) {
	return s.impressions.FindAll(ctx, printing.ImpressionFilter{})
}

func (s *Service) allExpenses(ctx context.Context) ([]finance.Expense, error) {
	return s.expenses.FindAll(ctx, finance.ExpenseFilter{})
}

func filterImpressions(impressions []printing.Impression, from, to valueobject.Date) []printing.Impression {
	if from.IsZero() && to.IsZero() {
		return impressions
	}
	out := make([]printing.Impression, 0, len(impressions))
	for _, imp := range impressions {
		if imp.Fecha >= from && imp.Fecha <= to {
			out = append(out, imp)
		}
	}
	return out
}

func filterExpenses(expenses []finance.Expense, from, to valueobject.Date) []finance.Expense {
	if from.IsZero() && to.IsZero() {
		return expenses
	}
	out := make([]finance.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Fecha >= from && e.Fecha <= to {
			out = append(out, e)
		}
	}
	return out
}

// filename builds the deterministic attachment name
// Reporte_<Kind>_<PeriodToken>_<DDMMYYYY>.pdf
func filename(kind, token string, generated time.Time) string {
	return fmt.Sprintf("Reporte_%s_%s_%s.pdf", kind, token, generated.Format("02012006"))
}

func displayDate(d valueobject.Date) string {
	t, err := d.Time()
	if err != nil {
		return d.String()
	}
	return t.Format("02/01/2006")
}

func fileDate(d valueobject.Date) string {
	t, err := d.Time()
	if err != nil {
		return d.String()
	}
	return t.Format("02012006")
}
