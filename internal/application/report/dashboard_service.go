package report

import (
	"context"
	"time"

	"github.com/printshop/backend/internal/domain/finance"
	"github.com/printshop/backend/internal/domain/printing"
	"github.com/printshop/backend/internal/domain/report"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// Resumen is the month summary card block shown on the reports page
type Resumen struct {
	Periodo string              `json:"periodo"`
	Totales report.PeriodTotals `json:"totales"`
}

// DashboardService builds the dashboard and resumen read models
type DashboardService struct {
	impressions printing.ImpressionRepository
	expenses    finance.ExpenseRepository
	now         func() time.Time
}

// NewDashboardService creates a DashboardService using the wall clock
func NewDashboardService(impressions printing.ImpressionRepository, expenses finance.ExpenseRepository) *DashboardService {
	return &DashboardService{
		impressions: impressions,
		expenses:    expenses,
		now:         time.Now,
	}
}

// WithClock replaces the clock, for deterministic output in tests
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Dashboard folds every stored record into the trailing 12-month rollup
func (s *DashboardService) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	impressions, err := s.impressions.FindAll(ctx, printing.ImpressionFilter{})
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.FindAll(ctx, finance.ExpenseFilter{})
	if err != nil {
		return nil, err
	}
	dashboard := report.BuildDashboard(impressions, expenses, s.now())
	return &dashboard, nil
}

// Resumen summarizes one month. An empty month means the current one,
// labeled "este mes".
func (s *DashboardService) Resumen(ctx context.Context, month string) (*Resumen, error) {
	label := "este mes"
	base := s.now()
	if month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, err
		}
		base = t
		label = report.MonthLabel(month)
	}
	from, to := valueobject.MonthBounds(base)

	impressions, err := s.impressions.FindAll(ctx, printing.ImpressionFilter{})
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.FindAll(ctx, finance.ExpenseFilter{})
	if err != nil {
		return nil, err
	}

	return &Resumen{
		Periodo: label,
		Totales: report.ComputePeriodTotals(impressions, expenses, from, to),
	}, nil
}
