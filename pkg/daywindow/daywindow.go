// Package daywindow переводит календарную дату в часовом поясе филиала в интервал UTC.
package daywindow

import (
	"errors"
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ErrUnknownTimezone неизвестный идентификатор часового пояса IANA
var ErrUnknownTimezone = errors.New("daywindow: unknown timezone")

// lastMillisecond смещение конца дня от 23:59:59
const lastMillisecond = 999 * time.Millisecond

// Window интервал локальных суток в UTC: [00:00:00.000, 23:59:59.999]
type Window struct {
	Start time.Time
	End   time.Time
}

var locations sync.Map

// Location загружает часовой пояс по имени IANA с кешированием
func Location(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownTimezone)
	}
	if loc, ok := locations.Load(tz); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, tz, err)
	}

	locations.Store(tz, loc)
	return loc, nil
}

// Resolve возвращает границы суток date в часовом поясе tz.
// Длительность окна учитывает переходы на летнее/зимнее время (23 или 25 часов).
func Resolve(date types.Date, tz string) (Window, error) {
	loc, err := Location(tz)
	if err != nil {
		return Window{}, err
	}

	start := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, loc)
	end := time.Date(date.Year, date.Month, date.Day, 23, 59, 59, int(lastMillisecond), loc)

	return Window{Start: start.UTC(), End: end.UTC()}, nil
}

// Extend расширяет окно на d после конца суток
func (w Window) Extend(d time.Duration) Window {
	return Window{Start: w.Start, End: w.End.Add(d)}
}

// Contains сообщает, попадает ли t в окно (границы включительно)
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Local переводит момент t в локальное время часового пояса tz
func Local(t time.Time, tz string) (time.Time, error) {
	loc, err := Location(tz)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}
