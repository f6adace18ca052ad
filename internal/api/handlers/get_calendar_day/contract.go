package get_calendar_day

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/service/calendar/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type CalendarService interface {
	GetDay(ctx context.Context, branchID uuid.UUID, date types.Date) (*models.DayView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
