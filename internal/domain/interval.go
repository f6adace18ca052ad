package domain

import "time"

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two intervals share time. Touching intervals do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// Covers reports whether o lies entirely within i (boundaries inclusive)
func (i Interval) Covers(o Interval) bool {
	return !i.Start.After(o.Start) && !i.End.Before(o.End)
}

// Duration returns End - Start
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
