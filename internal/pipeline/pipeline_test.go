package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"ott-analytics/internal/config"
	"ott-analytics/internal/metrics"
	"ott-analytics/internal/pipeline"
	"ott-analytics/internal/testutil"
	"ott-analytics/internal/workbook"
)

func runConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Report.OutputDir = t.TempDir()
	return cfg
}

// End-to-end: of three revenue rows one has a negative amount and one an
// unparsable date, so exactly one row must flow through cleaning, the
// joins, and into the country view.
func TestRun_EndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.xlsx")
	testutil.WriteWorkbook(t, path, testutil.Sheets())
	cfg := runConfig(t)

	result, err := pipeline.Run(cfg, path, zaptest.NewLogger(t))
	require.NoError(t, err)

	doc := result.Document
	assert.Equal(t, 3, doc.Cleaning.Input)
	assert.Equal(t, 1, doc.Cleaning.BadDate)
	assert.Equal(t, 1, doc.Cleaning.BadAmount)
	assert.Equal(t, 1, doc.Cleaning.Output)
	assert.Equal(t, 1, doc.Joining.Output)

	require.Len(t, doc.Countries, 1)
	assert.Equal(t, "Norway", doc.Countries[0].CountryName)
	assert.Equal(t, 1, doc.Countries[0].Orders)
	assert.InDelta(t, 9.99, doc.Countries[0].TotalRevenue, 1e-9)

	require.Len(t, doc.Cohorts, 1)
	assert.Equal(t, metrics.CohortWithoutCoupon, doc.Cohorts[0].Cohort)
	assert.Equal(t, 1, doc.Cohorts[0].Customers)
	assert.Equal(t, 0.0, doc.Cohorts[0].RetentionRate)

	require.Len(t, doc.Monthly, 1)
	assert.Equal(t, "2024-03", doc.Monthly[0].Month)

	for _, chart := range result.ChartPaths {
		info, err := os.Stat(chart)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	_, err = os.Stat(result.ReportPath)
	require.NoError(t, err)
}

func TestRun_SignupCohortSource(t *testing.T) {
	sheets := testutil.Sheets()
	// Make all three revenue rows valid and owned by cust-2, who signed up
	// with a coupon; under the signup rule everything is with-coupon.
	sheets["revenue"] = [][]any{
		{"order_id", "payment_date", "amount", "coupon_code"},
		{"ord-3", "2024-03-01", "12.50", ""},
		{"ord-5", "2024-03-08", "12.50", ""},
	}
	sheets["subscription"] = [][]any{
		{"order_id", "customer_id", "plan_id"},
		{"ord-3", "cust-2", "plan-2"},
		{"ord-5", "cust-2", "plan-2"},
	}
	path := filepath.Join(t.TempDir(), "transactions.xlsx")
	testutil.WriteWorkbook(t, path, sheets)

	cfg := runConfig(t)
	cfg.Report.CohortSource = metrics.SourceSignup

	result, err := pipeline.Run(cfg, path, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.Len(t, result.Document.Cohorts, 1)
	cohort := result.Document.Cohorts[0]
	assert.Equal(t, metrics.CohortWithCoupon, cohort.Cohort)
	assert.Equal(t, "Chile", cohort.CountryName)
	assert.Equal(t, 1, cohort.Customers)
	assert.Equal(t, 1.0, cohort.RetentionRate)
}

func TestRun_MissingWorkbook(t *testing.T) {
	_, err := pipeline.Run(runConfig(t), filepath.Join(t.TempDir(), "nope.xlsx"), zaptest.NewLogger(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, workbook.ErrSourceUnavailable)
}

func TestRun_SchemaMismatch(t *testing.T) {
	sheets := testutil.Sheets()
	sheets["revenue"] = [][]any{
		{"order_id", "paid_at", "amount", "coupon_code"},
		{"ord-1", "2024-03-01", "9.99", ""},
	}
	path := filepath.Join(t.TempDir(), "transactions.xlsx")
	testutil.WriteWorkbook(t, path, sheets)

	_, err := pipeline.Run(runConfig(t), path, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, workbook.ErrSchemaMismatch)
}

func TestRun_UnwritableOutputDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.xlsx")
	testutil.WriteWorkbook(t, path, testutil.Sheets())

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	cfg := config.Default()
	cfg.Report.OutputDir = filepath.Join(dir, "out")

	_, err := pipeline.Run(cfg, path, zaptest.NewLogger(t))
	require.Error(t, err)
}
