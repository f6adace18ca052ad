// Package availability вычисляет свободные стартовые времена по снимку календаря.
// Пакет не обращается к хранилищу и не зависит от текущего времени: now передается явно.
package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/daywindow"
)

// Params параметры сетки слотов
type Params struct {
	// Window локальные сутки филиала в UTC, сетка начинается с Window.Start
	Window daywindow.Window
	// Step шаг сетки (slot_step_min филиала)
	Step time.Duration
	// Duration длительность услуги
	Duration time.Duration
	// Buffer минимальный запас между now и началом слота
	Buffer time.Duration
	Now    time.Time
	// StaffIDs подходящие сотрудники в порядке приоритета (по возрастанию ID)
	StaffIDs []uuid.UUID
}

// FetchWindow окно, за которое нужно загрузить календарь: слоты в конце суток
// могут заканчиваться уже на следующий день
func FetchWindow(window daywindow.Window, duration time.Duration) daywindow.Window {
	return window.Extend(duration)
}

// Compute возвращает по одному слоту на каждое свободное стартовое время.
// Слот назначается первому свободному сотруднику в порядке p.StaffIDs
func Compute(p Params, snapshot *domain.CalendarSnapshot) []domain.Slot {
	slots := make([]domain.Slot, 0)

	if len(p.StaffIDs) == 0 || p.Step <= 0 || p.Duration <= 0 || snapshot == nil {
		return slots
	}
	if len(snapshot.Shifts) == 0 {
		return slots
	}

	calendars := index(snapshot, p.Now)
	earliest := p.Now.Add(p.Buffer)

	for t := p.Window.Start; p.Window.Contains(t); t = t.Add(p.Step) {
		if earliest.After(t) {
			continue
		}

		candidate := domain.Interval{Start: t, End: t.Add(p.Duration)}
		for _, staffID := range p.StaffIDs {
			if calendars[staffID].isFree(candidate) {
				slots = append(slots, domain.Slot{Start: t, StaffID: staffID})
				break
			}
		}
	}

	return slots
}

type staffCalendar struct {
	shifts []domain.Interval
	busy   []domain.Interval
}

func (c *staffCalendar) isFree(candidate domain.Interval) bool {
	if c == nil {
		return false
	}

	covered := false
	for _, shift := range c.shifts {
		if shift.Covers(candidate) {
			covered = true
			break
		}
	}
	if !covered {
		return false
	}

	for _, b := range c.busy {
		if b.Overlaps(candidate) {
			return false
		}
	}
	return true
}

// index раскладывает снимок по сотрудникам. Неодобренные отгулы, отмененные бронирования
// и просроченные холды отбрасываются, даже если хранилище их вернуло
func index(snapshot *domain.CalendarSnapshot, now time.Time) map[uuid.UUID]*staffCalendar {
	calendars := make(map[uuid.UUID]*staffCalendar)
	get := func(id uuid.UUID) *staffCalendar {
		c, ok := calendars[id]
		if !ok {
			c = &staffCalendar{}
			calendars[id] = c
		}
		return c
	}

	for _, s := range snapshot.Shifts {
		c := get(s.StaffID)
		c.shifts = append(c.shifts, s.Interval())
	}
	for _, b := range snapshot.Breaks {
		c := get(b.StaffID)
		c.busy = append(c.busy, b.Interval())
	}
	for _, t := range snapshot.TimeOffs {
		if !t.Approved {
			continue
		}
		c := get(t.StaffID)
		c.busy = append(c.busy, t.Interval())
	}
	for _, b := range snapshot.Bookings {
		if !b.IsBusy() {
			continue
		}
		c := get(b.StaffID)
		c.busy = append(c.busy, b.Interval())
	}
	for _, h := range snapshot.Holds {
		if !h.IsActive(now) {
			continue
		}
		c := get(h.StaffID)
		c.busy = append(c.busy, h.Interval())
	}

	return calendars
}
