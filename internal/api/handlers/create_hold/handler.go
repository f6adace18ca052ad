package create_hold

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createHold "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_hold"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля запроса"
	msgBranchNotFound     = "филиал не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotUnavailable    = "слот недоступен"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking/hold
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var body CreateHoldRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /booking/hold - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	fields := handlers.FieldErrors{}
	req := body.ToUseCaseRequest(fields)
	if fields.HasErrors() {
		h.logger.Warn("POST /booking/hold - Invalid fields: %v", fields)
		handlers.RespondValidationError(w, msgInvalidFields, fields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrSlotTaken):
			h.logger.Warn("POST /booking/hold - Slot taken concurrently: staff_id=%s, start=%s", req.StaffID, body.StartAt)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createHold.ErrConflict):
			h.logger.Warn("POST /booking/hold - Slot not available: staff_id=%s, start=%s", req.StaffID, body.StartAt)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createHold.ErrBranchNotFound):
			h.logger.Warn("POST /booking/hold - Branch not found: branch_id=%s", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, createHold.ErrServiceNotFound):
			h.logger.Warn("POST /booking/hold - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /booking/hold - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFields)

		default:
			h.logger.Error("POST /booking/hold - Failed to create hold: staff_id=%s, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking/hold - Hold created successfully: hold_id=%s, staff_id=%s",
		result.HoldID, result.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
