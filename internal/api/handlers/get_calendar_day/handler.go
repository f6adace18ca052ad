package get_calendar_day

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendar"
)

const (
	msgInvalidParams  = "некорректные параметры запроса"
	msgBranchNotFound = "филиал не найден"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/calendar?date=YYYY-MM-DD&branchId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fields := handlers.FieldErrors{}
	branchID := fields.UUID("branchId", query.Get("branchId"))
	date := fields.Date("date", query.Get("date"))
	if fields.HasErrors() {
		h.logger.Warn("GET /admin/calendar - Invalid query params: %v", fields)
		handlers.RespondValidationError(w, msgInvalidParams, fields)
		return
	}

	view, err := h.service.GetDay(r.Context(), branchID, date)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrBranchNotFound):
			h.logger.Warn("GET /admin/calendar - Branch not found: branch_id=%s", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		default:
			h.logger.Error("GET /admin/calendar - Failed to get calendar: branch_id=%s, date=%s, error=%v",
				branchID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/calendar - Calendar retrieved successfully: branch_id=%s, date=%s, bookings=%d",
		branchID, date, len(view.Bookings))
	handlers.RespondJSON(w, http.StatusOK, FromDayView(view))
}
