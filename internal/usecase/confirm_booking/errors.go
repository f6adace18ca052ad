package confirm_booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrHoldNotFound возвращается, когда холд не найден (уже подтвержден или удален)
	ErrHoldNotFound = errors.New("confirm_booking: hold not found")

	// ErrConflict класс ошибок конфликта состояния
	ErrConflict = errors.New("confirm_booking: conflict")

	// ErrHoldExpired возвращается, когда холд истек до подтверждения
	ErrHoldExpired = fmt.Errorf("%w: hold expired", ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)

// ValidationError ошибки валидации по полям запроса
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%v: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
