package update_booking_status_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	handler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type serviceStub struct {
	gotID  uuid.UUID
	gotReq *models.UpdateStatusRequest
	err    error
}

func (s *serviceStub) UpdateStatus(_ context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.gotID, s.gotReq = id, req
	if s.err != nil {
		return nil, s.err
	}
	now := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	return &models.BookingResponse{ID: id, Status: req.Status, StartAt: now, EndAt: now.Add(time.Hour)}, nil
}

func serve(svc *serviceStub, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/admin/bookings/{bookingId}/status", handler.NewHandler(svc, logger.Nop()).Handle).
		Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+id+"/status", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &serviceStub{}
	id := uuid.New()

	rec := serve(svc, id.String(), `{"status":"CANCELLED"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.gotID)
	assert.Equal(t, "CANCELLED", svc.gotReq.Status)

	var resp handlers.BookingJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, "2025-01-15T09:00:00Z", resp.StartAt)
}

func TestHandle_BadRequest(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&serviceStub{}, "nope", `{"status":"CANCELLED"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&serviceStub{}, uuid.NewString(), `{"state":"x"}`).Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid status", bookings.ErrInvalidStatus, http.StatusBadRequest},
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"final status", bookings.ErrCannotChangeStatus, http.StatusConflict},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&serviceStub{err: tt.err}, uuid.NewString(), `{"status":"COMPLETED"}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
