package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ott-analytics/internal/metrics"
)

// Config holds the report settings. Every field has a default; the file is
// optional and the workbook path stays a CLI argument, not a config field.
type Config struct {
	Report ReportSettings `yaml:"report"`
}

type ReportSettings struct {
	OutputDir    string               `yaml:"output_dir"`
	TopCountries int                  `yaml:"top_countries"`
	CohortSource metrics.CohortSource `yaml:"cohort_source"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Report: ReportSettings{
			OutputDir:    "reports",
			TopCountries: 10,
			CohortSource: metrics.SourceTransaction,
		},
	}
}

// LoadConfig reads a yaml config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Report.TopCountries <= 0 {
		return fmt.Errorf("top_countries must be positive, got %d", c.Report.TopCountries)
	}
	switch c.Report.CohortSource {
	case metrics.SourceTransaction, metrics.SourceSignup:
	default:
		return fmt.Errorf("unknown cohort_source %q", c.Report.CohortSource)
	}
	if c.Report.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}
