package confirm_booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	handler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/confirm_booking"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	confirmBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/confirm_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type useCaseStub struct {
	got  *confirmBooking.Request
	resp *confirmBooking.Response
	err  error
}

func (s *useCaseStub) Execute(_ context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *useCaseStub, body string) *httptest.ResponseRecorder {
	h := handler.NewHandler(uc, logger.Nop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking/confirm", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func body(holdID string) string {
	return `{"holdId":"` + holdID + `","customerName":"Jan Novak","customerEmail":"jan@example.com",` +
		`"customerPhone":"+420601123456","note":"first visit"}`
}

func TestHandle_Created(t *testing.T) {
	holdID := uuid.New()
	uc := &useCaseStub{resp: &confirmBooking.Response{BookingID: uuid.New(), Status: string(domain.StatusConfirmed)}}

	rec := serve(uc, body(holdID.String()))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, holdID, uc.got.HoldID)
	require.NotNil(t, uc.got.Note)
	assert.Equal(t, "first visit", *uc.got.Note)

	var resp handler.ConfirmBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uc.resp.BookingID.String(), resp.BookingID)
	assert.Equal(t, "CONFIRMED", resp.Status)
}

func TestHandle_InvalidHoldID(t *testing.T) {
	uc := &useCaseStub{}
	rec := serve(uc, body("123"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_ValidationDetails(t *testing.T) {
	uc := &useCaseStub{err: &confirmBooking.ValidationError{Fields: map[string]string{
		"customerEmail": "bad email",
		"customerPhone": "too short",
	}}}

	rec := serve(uc, body(uuid.NewString()))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bad email", resp.Details["customerEmail"])
	assert.Equal(t, "too short", resp.Details["customerPhone"])
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", confirmBooking.ErrHoldNotFound, http.StatusNotFound},
		{"expired", confirmBooking.ErrHoldExpired, http.StatusNotFound},
		{"internal", confirmBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&useCaseStub{err: tt.err}, body(uuid.NewString()))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
