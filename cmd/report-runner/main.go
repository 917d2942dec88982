package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"ott-analytics/internal/config"
	"ott-analytics/internal/pipeline"
	"ott-analytics/internal/workbook"
)

func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	workbookPath := flag.String("workbook", "", "path to the transactions workbook (.xlsx)")
	configPath := flag.String("config", "", "optional report config file")
	verbose := flag.Bool("verbose", false, "enable debug logging")

	flag.Parse()

	if *workbookPath == "" {
		fmt.Fprintln(os.Stderr, "usage: report-runner -workbook transactions.xlsx [-config config.yaml]")
		exitCode = 1
		return
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		exitCode = 1
		return
	}
	defer logger.Sync()

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error("failed to load config", zap.String("path", *configPath), zap.Error(err))
			exitCode = 1
			return
		}
	}

	result, err := pipeline.Run(cfg, *workbookPath, logger)
	if err != nil {
		switch {
		case errors.Is(err, workbook.ErrSourceUnavailable):
			logger.Error("input unavailable", zap.Error(err))
		case errors.Is(err, workbook.ErrSchemaMismatch):
			logger.Error("input schema mismatch", zap.Error(err))
		default:
			logger.Error("run failed", zap.Error(err))
		}
		exitCode = 1
		return
	}

	logger.Info("run complete",
		zap.String("report", result.ReportPath),
		zap.Strings("charts", result.ChartPaths),
		zap.Int("fact_rows", result.Document.Joining.Output))
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
