package table

import "errors"

var (
	ErrTableNotFound = errors.New("table.repository: table not found")
	ErrBuildQuery    = errors.New("table.repository: failed to build query")
	ErrExecQuery     = errors.New("table.repository: failed to execute query")
	ErrScanRow       = errors.New("table.repository: failed to scan row")
)
