package get_calendar_day

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/service/calendar/models"
)

// DayResponse HTTP response model
type DayResponse struct {
	Date     string        `json:"date"`
	BranchID string        `json:"branchId"`
	Timezone string        `json:"timezone"`
	From     string        `json:"from"`
	To       string        `json:"to"`
	Staff    []StaffDay    `json:"staff"`
	Bookings []BookingItem `json:"bookings"`
}

type StaffDay struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Shifts []Interval `json:"shifts"`
}

type Interval struct {
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
}

type BookingItem struct {
	ID           string `json:"id"`
	StaffID      string `json:"staffId"`
	ServiceID    string `json:"serviceId"`
	StartAt      string `json:"startAt"`
	EndAt        string `json:"endAt"`
	Status       string `json:"status"`
	CustomerName string `json:"customerName"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FromDayView конвертирует календарь дня в HTTP response
func FromDayView(view *models.DayView) *DayResponse {
	staff := make([]StaffDay, len(view.Staff))
	for i, sd := range view.Staff {
		shifts := make([]Interval, len(sd.Shifts))
		for j, sh := range sd.Shifts {
			shifts[j] = Interval{StartAt: formatTime(sh.StartAt), EndAt: formatTime(sh.EndAt)}
		}
		staff[i] = StaffDay{ID: sd.Staff.ID.String(), Name: sd.Staff.Name, Shifts: shifts}
	}

	bookings := make([]BookingItem, len(view.Bookings))
	for i, b := range view.Bookings {
		bookings[i] = BookingItem{
			ID:           b.ID.String(),
			StaffID:      b.StaffID.String(),
			ServiceID:    b.ServiceID.String(),
			StartAt:      formatTime(b.StartAt),
			EndAt:        formatTime(b.EndAt),
			Status:       string(b.Status),
			CustomerName: b.CustomerName,
		}
	}

	return &DayResponse{
		Date:     view.Date.String(),
		BranchID: view.Branch.ID.String(),
		Timezone: view.Branch.Timezone,
		From:     formatTime(view.From),
		To:       formatTime(view.To),
		Staff:    staff,
		Bookings: bookings,
	}
}
