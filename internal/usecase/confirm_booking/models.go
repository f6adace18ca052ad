package confirm_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на подтверждение холда
type Request struct {
	HoldID        uuid.UUID // ID холда
	CustomerName  string    // Имя клиента
	CustomerEmail string    // Email клиента
	CustomerPhone string    // Телефон клиента
	Note          *string   // Комментарий (опционально)
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	BookingID uuid.UUID
	Status    string
	StaffID   uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
}
