package create_hold_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	handler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_hold"
	createHold "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_hold"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type useCaseStub struct {
	got  *createHold.Request
	resp *createHold.Response
	err  error
}

func (s *useCaseStub) Execute(_ context.Context, req *createHold.Request) (*createHold.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *useCaseStub, body string) *httptest.ResponseRecorder {
	h := handler.NewHandler(uc, logger.Nop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking/hold", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func validBody(staffID uuid.UUID) string {
	return `{"branchId":"` + uuid.NewString() + `","serviceId":"` + uuid.NewString() +
		`","staffId":"` + staffID.String() + `","startAt":"2025-01-15T10:00:00+01:00","date":"2025-01-15"}`
}

func TestHandle_Created(t *testing.T) {
	staffID := uuid.New()
	start := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	uc := &useCaseStub{resp: &createHold.Response{
		HoldID:    uuid.New(),
		StaffID:   staffID,
		StartAt:   start,
		EndAt:     start.Add(time.Hour),
		ExpiresAt: start.Add(-time.Hour),
	}}

	rec := serve(uc, validBody(staffID))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, start.Equal(uc.got.StartAt), "startAt normalized to UTC")
	assert.Equal(t, types.Date{Year: 2025, Month: time.January, Day: 15}, uc.got.Date)

	var body handler.HoldResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uc.resp.HoldID.String(), body.HoldID)
	assert.Equal(t, "2025-01-15T09:00:00Z", body.StartAt)
	assert.Equal(t, "2025-01-15T10:00:00Z", body.EndAt)
	assert.NotEmpty(t, body.ExpiresAt)
}

func TestHandle_BadBody(t *testing.T) {
	tests := map[string]string{
		"not json":      `{`,
		"unknown field": `{"branchId":"x","extra":1}`,
		"trailing data": `{} {}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			uc := &useCaseStub{}
			rec := serve(uc, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_FieldErrors(t *testing.T) {
	uc := &useCaseStub{}
	rec := serve(uc, `{"branchId":"","serviceId":"bad","staffId":"`+uuid.NewString()+`","startAt":"10:00","date":"2025-01-15"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Details, 3)
	assert.Contains(t, body.Details, "startAt")
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not available", createHold.ErrSlotNotAvailable, http.StatusConflict},
		{"taken", createHold.ErrSlotTaken, http.StatusConflict},
		{"branch", createHold.ErrBranchNotFound, http.StatusNotFound},
		{"service", createHold.ErrServiceNotFound, http.StatusNotFound},
		{"invalid", createHold.ErrInvalidInput, http.StatusBadRequest},
		{"internal", createHold.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&useCaseStub{err: tt.err}, validBody(uuid.New()))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
