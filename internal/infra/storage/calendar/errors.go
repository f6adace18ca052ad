package calendar

import "errors"

var (
	ErrBuildQuery = errors.New("calendar.repository: failed to build query")
	ErrExecQuery  = errors.New("calendar.repository: failed to execute query")
	ErrScanRow    = errors.New("calendar.repository: failed to scan row")
)
