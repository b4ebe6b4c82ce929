package utils

import (
	"encoding/json"
	"time"
)

// RFC3339Date оборачивает time.Time для сериализации меток времени в формате RFC3339.
type RFC3339Date struct {
	time.Time
}

func (d *RFC3339Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

func (d *RFC3339Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// calendarDateLayout - формат календарного дня без времени.
const calendarDateLayout = "2006-01-02"

// CalendarDate представляет календарный день (без времени суток) в UTC.
// Используется для курса за день и границ отчетного периода.
type CalendarDate struct {
	time.Time
}

// NewCalendarDate усекает метку времени до начала календарного дня в UTC.
func NewCalendarDate(t time.Time) CalendarDate {
	y, m, d := t.UTC().Date()
	return CalendarDate{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseCalendarDate разбирает строку вида "2006-01-02".
func ParseCalendarDate(value string) (CalendarDate, error) {
	t, err := time.Parse(calendarDateLayout, value)
	if err != nil {
		return CalendarDate{}, err
	}
	return CalendarDate{t}, nil
}

func (d CalendarDate) String() string {
	return d.Time.Format(calendarDateLayout)
}

// Before сообщает, предшествует ли день d дню other.
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.Time.Before(other.Time)
}

// Equal сообщает, совпадают ли календарные дни.
func (d CalendarDate) Equal(other CalendarDate) bool {
	return d.Time.Equal(other.Time)
}

// Next возвращает следующий календарный день.
func (d CalendarDate) Next() CalendarDate {
	return CalendarDate{d.Time.AddDate(0, 0, 1)}
}

func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseCalendarDate(str)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}
