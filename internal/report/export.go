// Package report assembles and writes the JSON report document that
// accompanies the chart images.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ott-analytics/internal/cleaning"
	"ott-analytics/internal/joining"
	"ott-analytics/internal/metrics"
	"ott-analytics/internal/profile"
)

// Document is the full run output: every aggregate view plus the exclusion
// counters from the cleaning and joining steps.
type Document struct {
	RunID        string                 `json:"run_id"`
	GeneratedAt  time.Time              `json:"generated_at"`
	Workbook     string                 `json:"workbook"`
	Sheets       []profile.SheetProfile `json:"sheets"`
	Cleaning     cleaning.Stats         `json:"cleaning"`
	Joining      joining.Stats          `json:"joining"`
	Countries    []metrics.CountryStat  `json:"countries"`
	Cohorts      []metrics.CohortStat   `json:"cohorts"`
	Monthly      []metrics.MonthStat    `json:"monthly"`
	Distribution metrics.Distribution   `json:"distribution"`
}

// ExportJSON writes the document indented to path, creating the directory
// if needed. Write failures are fatal for the run and returned as-is.
func ExportJSON(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write report JSON: %w", err)
	}
	return nil
}

// TimestampedFilename builds "<dir>/<name>_<stamp>.<ext>" like the report
// exports this replaces, second resolution.
func TimestampedFilename(dir, name, ext string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", name, now.Format("20060102_150405"), ext))
}
