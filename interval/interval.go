package interval

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"timesheet/shift"
)

// TimestampLayout is the persisted second-precision local timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

var ErrInvalidInterval = errors.New("interval end must be after start")

// Interval is a completed work period. It is created at clock-out and never
// changed afterwards.
type Interval struct {
	ID            int64
	Start         time.Time
	End           time.Time
	DurationHours float64
	Shift         shift.Label
}

// New closes a work period: it derives the rounded duration and classifies
// the shift from the two timestamps.
func New(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, fmt.Errorf("%w: start %s, end %s", ErrInvalidInterval, start.Format(TimestampLayout), end.Format(TimestampLayout))
	}
	return Interval{
		Start:         start,
		End:           end,
		DurationHours: RoundHours(end.Sub(start).Hours()),
		Shift:         shift.Classify(start, end),
	}, nil
}

// RoundHours rounds the exact binary value to two decimals; exact halves go
// to even.
func RoundHours(value float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 2, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}

// HasShift reports whether a label was stored for the interval.
func (i Interval) HasShift() bool {
	return i.Shift != shift.None
}
