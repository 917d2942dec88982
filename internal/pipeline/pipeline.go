// Package pipeline runs the whole workflow in order: load, profile, clean,
// join, aggregate, render. Each step owns the table it produces; a failure
// at any step halts the run.
package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ott-analytics/internal/charts"
	"ott-analytics/internal/cleaning"
	"ott-analytics/internal/config"
	"ott-analytics/internal/joining"
	"ott-analytics/internal/metrics"
	"ott-analytics/internal/profile"
	"ott-analytics/internal/records"
	"ott-analytics/internal/report"
	"ott-analytics/internal/workbook"
)

// Result is what a completed run produced on disk, plus the report document
// itself for callers that want the numbers without re-reading the file.
type Result struct {
	Document   *report.Document
	ReportPath string
	ChartPaths []string
}

// Run executes one end-to-end report over the workbook at workbookPath.
func Run(cfg *config.Config, workbookPath string, logger *zap.Logger) (*Result, error) {
	runID := uuid.New().String()
	now := time.Now().UTC()
	logger = logger.With(zap.String("run_id", runID))

	tables, err := workbook.Load(workbookPath)
	if err != nil {
		return nil, err
	}
	logger.Info("workbook loaded", zap.String("path", workbookPath))

	sheetProfiles := profile.Sheets(tables)
	for _, p := range sheetProfiles {
		logger.Info("sheet profile",
			zap.String("sheet", p.Sheet),
			zap.Int("rows", p.Rows),
			zap.Int("columns", p.Columns))
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		if desc, err := profile.Describe(tables[workbook.SheetRevenue]); err == nil {
			logger.Debug("revenue describe", zap.String("summary", desc))
		}
	}

	subs, err := records.DecodeSubscriptions(tables[workbook.SheetSubscription])
	if err != nil {
		return nil, err
	}
	customers, err := records.DecodeCustomers(tables[workbook.SheetCustomers])
	if err != nil {
		return nil, err
	}
	countries, err := records.DecodeCountries(tables[workbook.SheetCountries])
	if err != nil {
		return nil, err
	}
	plans, err := records.DecodePlans(tables[workbook.SheetPlan])
	if err != nil {
		return nil, err
	}

	revenue, cleanStats, err := cleaning.Clean(tables[workbook.SheetRevenue])
	if err != nil {
		return nil, err
	}
	logger.Info("revenue cleaned",
		zap.Int("input", cleanStats.Input),
		zap.Int("bad_date", cleanStats.BadDate),
		zap.Int("bad_amount", cleanStats.BadAmount),
		zap.Int("duplicates", cleanStats.Duplicates),
		zap.Int("output", cleanStats.Output))

	fact, joinStats := joining.Join(revenue, subs, customers, countries, plans)
	logger.Info("fact table built",
		zap.Int("input", joinStats.Input),
		zap.Int("no_subscription", joinStats.NoSubscription),
		zap.Int("no_customer", joinStats.NoCustomer),
		zap.Int("no_country", joinStats.NoCountry),
		zap.Int("no_plan", joinStats.NoPlan),
		zap.Int("output", joinStats.Output))

	signupFlags := make(map[string]bool, len(customers))
	for _, c := range customers {
		signupFlags[c.ID] = c.SignupCoupon
	}

	countryView := metrics.CountryView(fact)
	cohortView := metrics.CohortView(fact, cfg.Report.CohortSource, signupFlags)
	monthlyView := metrics.MonthlyView(fact)
	distribution := metrics.AmountDistribution(fact)

	topCountries := metrics.TopCountries(countryView, cfg.Report.TopCountries)
	topCohorts := metrics.TopCohortCountries(cohortView, cfg.Report.TopCountries)

	chartSpecs := []struct {
		name string
		spec charts.Spec
	}{
		{"country_revenue", charts.CountryRevenueSpec(topCountries)},
		{"cohort_customers", charts.CohortCustomersSpec(topCohorts)},
		{"monthly_revenue", charts.MonthlyRevenueSpec(monthlyView)},
	}

	if err := os.MkdirAll(cfg.Report.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var chartPaths []string
	for _, c := range chartSpecs {
		if len(c.spec.Categories) == 0 {
			logger.Warn("chart skipped, nothing to plot", zap.String("chart", c.name))
			continue
		}
		path := report.TimestampedFilename(cfg.Report.OutputDir, c.name, "png", now)
		if err := charts.RenderBar(c.spec, path); err != nil {
			return nil, fmt.Errorf("render %s: %w", c.name, err)
		}
		logger.Info("chart written", zap.String("path", path))
		chartPaths = append(chartPaths, path)
	}

	doc := &report.Document{
		RunID:        runID,
		GeneratedAt:  now,
		Workbook:     workbookPath,
		Sheets:       sheetProfiles,
		Cleaning:     cleanStats,
		Joining:      joinStats,
		Countries:    countryView,
		Cohorts:      cohortView,
		Monthly:      monthlyView,
		Distribution: distribution,
	}
	reportPath := report.TimestampedFilename(cfg.Report.OutputDir, "summary", "json", now)
	if err := report.ExportJSON(reportPath, doc); err != nil {
		return nil, err
	}
	logger.Info("report written", zap.String("path", reportPath))

	return &Result{
		Document:   doc,
		ReportPath: reportPath,
		ChartPaths: chartPaths,
	}, nil
}
