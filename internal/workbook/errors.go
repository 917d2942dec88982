package workbook

import "errors"

// ErrSourceUnavailable means the workbook file or one of the required sheets
// is missing. Fatal for the run.
var ErrSourceUnavailable = errors.New("source unavailable")

// ErrSchemaMismatch means a sheet is present but an expected column is not.
// Fatal for the run.
var ErrSchemaMismatch = errors.New("schema mismatch")
