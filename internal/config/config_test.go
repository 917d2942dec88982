package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ott-analytics/internal/config"
	"ott-analytics/internal/metrics"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "reports", cfg.Report.OutputDir)
	assert.Equal(t, 10, cfg.Report.TopCountries)
	assert.Equal(t, metrics.SourceTransaction, cfg.Report.CohortSource)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
report:
  output_dir: out
  top_countries: 5
  cohort_source: signup
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Report.OutputDir)
	assert.Equal(t, 5, cfg.Report.TopCountries)
	assert.Equal(t, metrics.SourceSignup, cfg.Report.CohortSource)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
report:
  top_countries: 3
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Report.TopCountries)
	assert.Equal(t, "reports", cfg.Report.OutputDir)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"zero top": `
report:
  top_countries: 0
`,
		"bad cohort source": `
report:
  cohort_source: horoscope
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}
