package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidParams   = "некорректные параметры запроса"
	msgBranchNotFound  = "филиал не найден"
	msgServiceNotFound = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: branchId, serviceId, date (YYYY-MM-DD) обязательны, staffId опционален
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fields := handlers.FieldErrors{}
	req := &getAvailableSlots.Request{
		BranchID:  fields.UUID("branchId", query.Get("branchId")),
		ServiceID: fields.UUID("serviceId", query.Get("serviceId")),
		StaffID:   fields.OptionalUUID("staffId", query.Get("staffId")),
		Date:      fields.Date("date", query.Get("date")),
	}
	if fields.HasErrors() {
		h.logger.Warn("GET /availability - Invalid query params: %v", fields)
		handlers.RespondValidationError(w, msgInvalidParams, fields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBranchNotFound):
			h.logger.Warn("GET /availability - Branch not found: branch_id=%s", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability - Failed to get slots: branch_id=%s, service_id=%s, error=%v",
				req.BranchID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Slots retrieved successfully: branch_id=%s, service_id=%s, date=%s, slots_count=%d",
		req.BranchID, req.ServiceID, req.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
