package create_hold

import (
	"errors"
	"fmt"
)

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("create_hold: branch not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_hold: service not found")

	// ErrConflict класс ошибок занятого слота
	ErrConflict = errors.New("create_hold: conflict")

	// ErrSlotNotAvailable возвращается, когда слота нет в пересчитанной доступности
	ErrSlotNotAvailable = fmt.Errorf("%w: slot is not available", ErrConflict)

	// ErrSlotTaken возвращается, когда слот занят параллельным запросом
	ErrSlotTaken = fmt.Errorf("%w: slot was taken concurrently", ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)

// Исходы для метрики hold_outcomes_total
const (
	outcomeCreated      = "created"
	outcomeNotAvailable = "not_available"
	outcomeTaken        = "taken"
	outcomeError        = "error"
)
