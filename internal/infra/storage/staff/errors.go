package staff

import "errors"

var (
	ErrBuildQuery = errors.New("staff.repository: failed to build query")
	ErrExecQuery  = errors.New("staff.repository: failed to execute query")
	ErrScanRow    = errors.New("staff.repository: failed to scan row")
)
