package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	detailRequired    = "обязательное поле"
	detailInvalidUUID = "некорректный UUID"
	detailInvalidDate = "некорректная дата, ожидается YYYY-MM-DD"
	detailInvalidTime = "некорректное время, ожидается RFC 3339"
)

// FieldErrors накапливает ошибки разбора параметров по полям
type FieldErrors map[string]string

// HasErrors сообщает, что хотя бы одно поле не прошло разбор
func (f FieldErrors) HasErrors() bool {
	return len(f) > 0
}

// UUID разбирает обязательный UUID
func (f FieldErrors) UUID(field, raw string) uuid.UUID {
	if raw == "" {
		f[field] = detailRequired
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		f[field] = detailInvalidUUID
		return uuid.Nil
	}
	return id
}

// OptionalUUID разбирает необязательный UUID
func (f FieldErrors) OptionalUUID(field, raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id := f.UUID(field, raw)
	if id == uuid.Nil {
		return nil
	}
	return ptr.Ptr(id)
}

// Date разбирает обязательную дату YYYY-MM-DD
func (f FieldErrors) Date(field, raw string) types.Date {
	if raw == "" {
		f[field] = detailRequired
		return types.Date{}
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		f[field] = detailInvalidDate
		return types.Date{}
	}
	return d
}

// Time разбирает обязательный момент времени RFC 3339
func (f FieldErrors) Time(field, raw string) time.Time {
	if raw == "" {
		f[field] = detailRequired
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		f[field] = detailInvalidTime
		return time.Time{}
	}
	return t.UTC()
}
