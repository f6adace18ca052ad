package hold

import "errors"

var (
	// ErrHoldNotFound возвращается, когда холд не найден
	ErrHoldNotFound = errors.New("hold.repository: hold not found")

	// ErrConflict возвращается, когда параллельная транзакция изменила те же данные
	ErrConflict = errors.New("hold.repository: concurrent modification")

	// ErrNotInTransaction возвращается, когда операция требует открытой транзакции
	ErrNotInTransaction = errors.New("hold.repository: transaction required")

	ErrBuildQuery = errors.New("hold.repository: failed to build query")
	ErrExecQuery  = errors.New("hold.repository: failed to execute query")
	ErrScanRow    = errors.New("hold.repository: failed to scan row")
)
