package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-01-15", want: Date{2025, time.January, 15}},
		{in: "2024-02-29", want: Date{2024, time.February, 29}},
		{in: "2025-02-30", wantErr: true},
		{in: "2025-1-15", wantErr: true},
		{in: "15.01.2025", wantErr: true},
		{in: "2025-01-15T10:00:00Z", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-03-30"}`), &payload))
	assert.Equal(t, Date{2025, time.March, 30}, payload.Date)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-03-30"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"30-03-2025"}`), &payload))
}

func TestDate_AddDays(t *testing.T) {
	assert.Equal(t, Date{2025, time.January, 1}, Date{2024, time.December, 31}.AddDays(1))
	assert.True(t, Date{}.IsZero())
}
