package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondValidationError(rec, "bad", map[string]string{"date": detailInvalidDate})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 400, body.Code)
	assert.Equal(t, detailInvalidDate, body.Details["date"])
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "x", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","age":3}`))
	assert.Error(t, DecodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}{"name":"y"}`))
	assert.Error(t, DecodeJSON(req, &dst))
}

func TestFieldErrors(t *testing.T) {
	fields := FieldErrors{}
	id := uuid.New()

	assert.Equal(t, id, fields.UUID("a", id.String()))
	assert.Nil(t, fields.OptionalUUID("b", ""))
	assert.False(t, fields.HasErrors())

	fields.UUID("c", "")
	fields.OptionalUUID("d", "zzz")
	fields.Date("e", "2025-13-01")
	got := fields.Time("f", "2025-01-15T10:00:00+01:00")

	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, FieldErrors{
		"c": detailRequired,
		"d": detailInvalidUUID,
		"e": detailInvalidDate,
	}, fields)
}
