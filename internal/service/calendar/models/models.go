package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// DayView календарь филиала на локальные сутки
type DayView struct {
	Date     types.Date
	Branch   *domain.Branch
	From     time.Time
	To       time.Time
	Staff    []*StaffDay
	Bookings []*domain.Booking
}

// StaffDay сотрудник и его смены за сутки
type StaffDay struct {
	Staff  *domain.Staff
	Shifts []*domain.Shift
}
