package create_hold

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание холда
type Request struct {
	BranchID  uuid.UUID  // ID филиала
	ServiceID uuid.UUID  // ID услуги
	StaffID   uuid.UUID  // ID сотрудника из выбранного слота
	StartAt   time.Time  // Начало слота (UTC)
	Date      types.Date // Календарная дата слота в часовом поясе филиала
}

// Response модель ответа с созданным холдом
type Response struct {
	HoldID    uuid.UUID
	StaffID   uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	ExpiresAt time.Time
}
