// Package shift assigns a worked interval to the Overday, Mid or Night band
// that covers most of its minutes.
package shift

import (
	"fmt"
	"strings"
	"time"
)

type Label int

const (
	None Label = iota
	Overday
	Mid
	Night
)

// Order is the tie-break order used when two bands have the same minute count.
var Order = [...]Label{Overday, Mid, Night}

func (l Label) Code() string {
	switch l {
	case Overday:
		return "O"
	case Mid:
		return "M"
	case Night:
		return "N"
	default:
		return ""
	}
}

func (l Label) Name() string {
	switch l {
	case Overday:
		return "Overday"
	case Mid:
		return "Mid"
	case Night:
		return "Night"
	default:
		return ""
	}
}

func (l Label) String() string {
	if l == None {
		return "none"
	}
	return l.Name()
}

// ParseLabel maps a persisted single-letter code back to a Label. Empty input
// is a legacy row without a label and yields None.
func ParseLabel(code string) (Label, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "":
		return None, nil
	case "O":
		return Overday, nil
	case "M":
		return Mid, nil
	case "N":
		return Night, nil
	default:
		return None, fmt.Errorf("unknown shift code %q", code)
	}
}

// BandForHour returns the band a wall-clock hour belongs to.
func BandForHour(hour int) Label {
	switch {
	case hour >= 6 && hour < 14:
		return Overday
	case hour >= 14 && hour < 22:
		return Mid
	default:
		return Night
	}
}

// Counts holds sampled minutes per band.
type Counts struct {
	Overday int
	Mid     int
	Night   int
}

func (c *Counts) add(label Label, minutes int) {
	switch label {
	case Overday:
		c.Overday += minutes
	case Mid:
		c.Mid += minutes
	case Night:
		c.Night += minutes
	}
}

func (c Counts) Of(label Label) int {
	switch label {
	case Overday:
		return c.Overday
	case Mid:
		return c.Mid
	case Night:
		return c.Night
	default:
		return 0
	}
}

// Winner returns the band with the most minutes. Ties go to the band listed
// first in Order.
func (c Counts) Winner() Label {
	best := Order[0]
	for _, label := range Order[1:] {
		if c.Of(label) > c.Of(best) {
			best = label
		}
	}
	return best
}

// Classify walks the interval minute by minute, from start inclusive to end
// exclusive, and returns the band with the most samples. Callers must pass
// end after start.
func Classify(start, end time.Time) Label {
	return SampleCounts(start, end).Winner()
}

// SampleCounts is the per-minute reference walk behind Classify.
func SampleCounts(start, end time.Time) Counts {
	var counts Counts
	cur, stop := wallClock(start), wallClock(end)
	for cur.Before(stop) {
		counts.add(BandForHour(cur.Hour()), 1)
		cur = cur.Add(time.Minute)
	}
	return counts
}

// wallClock drops the zone so that stepping by a minute follows the local
// clock face and never skips or repeats an hour across DST changes.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
