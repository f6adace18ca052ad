package domain

import (
	"time"

	"github.com/google/uuid"
)

// Branch is a physical location with its own timezone and slot grid settings
type Branch struct {
	ID                   uuid.UUID
	Name                 string
	Slug                 string
	Timezone             string
	SlotStepMinutes      int
	BookingBufferMinutes int
	CreatedAt            time.Time
}

// SlotStep returns the spacing between candidate start times
func (b *Branch) SlotStep() time.Duration {
	step := b.SlotStepMinutes
	if step <= 0 {
		step = DefaultSlotStepMinutes
	}
	return time.Duration(step) * time.Minute
}

// BookingBuffer returns the minimum lead time between now and a slot start
func (b *Branch) BookingBuffer() time.Duration {
	if b.BookingBufferMinutes < 0 {
		return 0
	}
	return time.Duration(b.BookingBufferMinutes) * time.Minute
}

// Service is a bookable service with a fixed duration
type Service struct {
	ID              uuid.UUID
	Name            string
	DurationMinutes int
	Active          bool
}

// Duration returns the service duration
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Staff is a worker assigned to a branch
type Staff struct {
	ID       uuid.UUID
	BranchID uuid.UUID
	Name     string
	Active   bool
}
