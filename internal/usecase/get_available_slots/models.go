package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BranchID  uuid.UUID  // ID филиала
	ServiceID uuid.UUID  // ID услуги
	StaffID   *uuid.UUID // Предпочитаемый сотрудник (опционально)
	Date      types.Date // Календарная дата в часовом поясе филиала
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      types.Date
	BranchID  uuid.UUID
	ServiceID uuid.UUID
	Timezone  string        // Часовой пояс филиала (IANA)
	Duration  time.Duration // Длительность услуги
	Slots     []Slot
}

// Slot свободное стартовое время
type Slot struct {
	Start      time.Time // Начало в UTC
	LocalStart time.Time // Начало в часовом поясе филиала
	StaffID    uuid.UUID // Первый свободный сотрудник
}
