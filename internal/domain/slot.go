package domain

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a bookable start time with the staff member who would perform the service
type Slot struct {
	Start   time.Time
	StaffID uuid.UUID
}
