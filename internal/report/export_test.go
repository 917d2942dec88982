package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ott-analytics/internal/cleaning"
	"ott-analytics/internal/metrics"
	"ott-analytics/internal/report"
)

func TestExportJSON_RoundTrip(t *testing.T) {
	doc := &report.Document{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Workbook:    "transactions.xlsx",
		Cleaning:    cleaning.Stats{Input: 3, BadDate: 1, BadAmount: 1, Output: 1},
		Countries:   []metrics.CountryStat{{CountryName: "Norway", Orders: 1, TotalRevenue: 9.99, AvgOrderValue: 9.99}},
	}

	path := filepath.Join(t.TempDir(), "nested", "summary.json")
	require.NoError(t, report.ExportJSON(path, doc))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got report.Document
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, doc.RunID, got.RunID)
	assert.Equal(t, doc.Cleaning, got.Cleaning)
	assert.Equal(t, doc.Countries, got.Countries)
}

func TestExportJSON_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	err := report.ExportJSON(filepath.Join(dir, "sub", "x.json"), &report.Document{})
	require.Error(t, err)
}

func TestTimestampedFilename(t *testing.T) {
	now := time.Date(2024, 3, 1, 13, 45, 9, 0, time.UTC)
	got := report.TimestampedFilename("reports", "summary", "json", now)
	assert.Equal(t, filepath.Join("reports", "summary_20240301_134509.json"), got)
}
