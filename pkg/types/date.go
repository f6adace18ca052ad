package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout формат календарной даты YYYY-MM-DD
const DateLayout = "2006-01-02"

// ErrInvalidDate некорректная календарная дата
var ErrInvalidDate = errors.New("types: invalid date, expected YYYY-MM-DD")

// Date календарная дата без часового пояса
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate разбирает строку YYYY-MM-DD. Несуществующие даты (2025-02-30) отклоняются
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// DateOf возвращает календарную дату момента t в его часовом поясе
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String форматирует дату как YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero сообщает, что дата не задана
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Midnight возвращает полночь даты в указанной локации
func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays сдвигает дату на n дней
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
