package hold

import "github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor

type rowScanner interface {
	Scan(dest ...interface{}) error
}
