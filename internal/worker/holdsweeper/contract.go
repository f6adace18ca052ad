package holdsweeper

import (
	"context"
	"time"
)

type HoldRepository interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type Metrics interface {
	AddHoldsSwept(n int64)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider текущее время UTC
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
