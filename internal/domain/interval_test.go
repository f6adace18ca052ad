package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2025, time.January, 15, h, m, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: at(10, 0), End: at(11, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{at(10, 0), at(11, 0)}, true},
		{"inside", Interval{at(10, 15), at(10, 45)}, true},
		{"partial left", Interval{at(9, 30), at(10, 30)}, true},
		{"partial right", Interval{at(10, 30), at(11, 30)}, true},
		{"touching before", Interval{at(9, 0), at(10, 0)}, false},
		{"touching after", Interval{at(11, 0), at(12, 0)}, false},
		{"disjoint", Interval{at(13, 0), at(14, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestInterval_Covers(t *testing.T) {
	shift := Interval{Start: at(10, 0), End: at(14, 0)}

	assert.True(t, shift.Covers(Interval{at(10, 0), at(11, 0)}))
	assert.True(t, shift.Covers(Interval{at(13, 0), at(14, 0)}))
	assert.False(t, shift.Covers(Interval{at(13, 30), at(14, 30)}))
	assert.False(t, shift.Covers(Interval{at(9, 30), at(10, 30)}))
}

func TestBookingHold_Expiry(t *testing.T) {
	now := at(12, 0)
	hold := &BookingHold{ExpiresAt: now}

	// Ровно в момент истечения холд уже не блокирует, но ещё не считается просроченным
	assert.False(t, hold.IsActive(now))
	assert.False(t, hold.IsExpired(now))

	assert.True(t, hold.IsActive(now.Add(-time.Second)))
	assert.True(t, hold.IsExpired(now.Add(time.Second)))
}

func TestParseBookingStatus(t *testing.T) {
	st, err := ParseBookingStatus("NO_SHOW")
	assert.NoError(t, err)
	assert.Equal(t, StatusNoShow, st)

	_, err = ParseBookingStatus("cancelled")
	assert.ErrorIs(t, err, ErrUnknownBookingStatus)
}
