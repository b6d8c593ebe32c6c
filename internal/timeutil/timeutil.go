package timeutil

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// MondayOf returns midnight of the Monday starting the ISO week of value.
func MondayOf(value time.Time) time.Time {
	offset := (int(value.Weekday()) + 6) % 7
	day := StartOfDay(value)
	return time.Date(day.Year(), day.Month(), day.Day()-offset, 0, 0, 0, 0, day.Location())
}

func DateKey(value time.Time) string {
	return value.Format(DateLayout)
}

// FormatElapsed renders a duration as HH:MM:SS, hours unbounded.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
