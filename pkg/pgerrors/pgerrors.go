package pgerrors

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeExclusionViolation   = "23P01"
	codeUniqueViolation      = "23505"
)

// ErrConcurrentConflict конкурентная транзакция изменила те же данные:
// сбой сериализации, deadlock или нарушение exclusion/unique ограничения
var ErrConcurrentConflict = errors.New("postgres: concurrent conflict")

// Code возвращает SQLSTATE ошибки postgres или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsConcurrentConflict сообщает, что ошибка вызвана параллельной транзакцией
func IsConcurrentConflict(err error) bool {
	if errors.Is(err, ErrConcurrentConflict) {
		return true
	}
	switch Code(err) {
	case codeSerializationFailure, codeDeadlockDetected, codeExclusionViolation, codeUniqueViolation:
		return true
	}
	return false
}

// Wrap помечает конфликтные ошибки postgres как ErrConcurrentConflict, остальные возвращает как есть
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsConcurrentConflict(err) && !errors.Is(err, ErrConcurrentConflict) {
		return fmt.Errorf("%w: %s: %v", ErrConcurrentConflict, op, err)
	}
	return err
}
