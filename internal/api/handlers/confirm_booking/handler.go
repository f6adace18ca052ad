package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	confirmBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/confirm_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля запроса"
	msgHoldNotFound       = "холд не найден или истек"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var body ConfirmBookingRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /booking/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	fields := handlers.FieldErrors{}
	req := body.ToUseCaseRequest(fields)
	if fields.HasErrors() {
		h.logger.Warn("POST /booking/confirm - Invalid fields: %v", fields)
		handlers.RespondValidationError(w, msgInvalidFields, fields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		var validationErr *confirmBooking.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /booking/confirm - Validation failed: %v", err)
			handlers.RespondValidationError(w, msgInvalidFields, validationErr.Fields)

		case errors.Is(err, confirmBooking.ErrHoldNotFound):
			h.logger.Warn("POST /booking/confirm - Hold not found: hold_id=%s", req.HoldID)
			handlers.RespondNotFound(w, msgHoldNotFound)

		case errors.Is(err, confirmBooking.ErrHoldExpired):
			h.logger.Warn("POST /booking/confirm - Hold expired: hold_id=%s", req.HoldID)
			handlers.RespondNotFound(w, msgHoldNotFound)

		default:
			h.logger.Error("POST /booking/confirm - Failed to confirm booking: hold_id=%s, error=%v", req.HoldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking/confirm - Booking confirmed successfully: booking_id=%s, hold_id=%s",
		result.BookingID, req.HoldID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
