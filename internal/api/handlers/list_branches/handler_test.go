package list_branches_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_branches"
	"github.com/m04kA/SMC-SchedulingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type serviceStub struct {
	branches []*models.BranchResponse
	err      error
}

func (s *serviceStub) ListBranches(context.Context) ([]*models.BranchResponse, error) {
	return s.branches, s.err
}

func serve(svc *serviceStub) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/branches", nil))
	return rec
}

func TestHandle(t *testing.T) {
	id := uuid.MustParse("7d1f8a52-3c1e-4b8e-9a57-1f0c2f4e6b10")
	rec := serve(&serviceStub{branches: []*models.BranchResponse{{
		ID:                   id,
		Name:                 "Karlin",
		Slug:                 "karlin",
		Timezone:             "Europe/Prague",
		SlotStepMinutes:      15,
		BookingBufferMinutes: 60,
	}}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{
		"id":"7d1f8a52-3c1e-4b8e-9a57-1f0c2f4e6b10",
		"name":"Karlin",
		"slug":"karlin",
		"timezone":"Europe/Prague",
		"slotStepMinutes":15,
		"bookingBufferMinutes":60
	}]`, rec.Body.String())
}

func TestHandle_Empty(t *testing.T) {
	rec := serve(&serviceStub{branches: []*models.BranchResponse{}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandle_InternalError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, serve(&serviceStub{err: errors.New("db down")}).Code)
}
