// Package report builds the seven-day timesheet for an ISO week from stored
// intervals.
package report

import (
	"fmt"
	"strings"
	"time"

	"timesheet/internal/apperr"
	"timesheet/internal/timeutil"
	"timesheet/interval"
	"timesheet/shift"
)

// OvertimeThreshold is the number of hours per day after which work counts as
// overtime.
const OvertimeThreshold = 8.0

// IntervalQuerier returns the intervals whose start date lies within the
// inclusive date range, ordered by start.
type IntervalQuerier interface {
	QueryRange(from, to time.Time) ([]interval.Interval, error)
}

type Week struct {
	ISOYear int
	ISOWeek int
	Monday  time.Time
	Sunday  time.Time
}

// WeekOf resolves the ISO-8601 week that contains date.
func WeekOf(date time.Time) Week {
	year, week := date.ISOWeek()
	monday := timeutil.MondayOf(date)
	return Week{
		ISOYear: year,
		ISOWeek: week,
		Monday:  monday,
		Sunday:  monday.AddDate(0, 0, 6),
	}
}

func (w Week) Title() string {
	return fmt.Sprintf("Timesheet - Week %d (%s to %s)", w.ISOWeek, timeutil.DateKey(w.Monday), timeutil.DateKey(w.Sunday))
}

func (w Week) Label() string {
	return fmt.Sprintf("%d-W%02d", w.ISOYear, w.ISOWeek)
}

type DayRow struct {
	Date          time.Time
	Interval      *interval.Interval
	ClockIn       string
	ClockOut      string
	Hours         float64
	OvertimeHours float64
	Shift         shift.Label
}

// Empty reports whether no interval was recorded for the day.
func (r DayRow) Empty() bool {
	return r.Interval == nil
}

type Totals struct {
	Hours         float64
	OvertimeHours float64
}

type WeeklyReport struct {
	Week
	Days   []DayRow
	Totals Totals
}

// BuildWeekly queries the store for the ISO week containing selected and
// returns one row per day, Monday first. A store failure yields a storage
// error and no report.
func BuildWeekly(selected time.Time, store IntervalQuerier) (WeeklyReport, error) {
	week := WeekOf(selected)

	intervals, err := store.QueryRange(week.Monday, week.Sunday)
	if err != nil {
		return WeeklyReport{}, apperr.Storage(fmt.Sprintf("query intervals for week %s", week.Label()), err)
	}

	return Aggregate(week, intervals), nil
}

// Aggregate lays intervals out over the seven days of week. When several
// intervals start on the same date the last one in the given order wins.
func Aggregate(week Week, intervals []interval.Interval) WeeklyReport {
	byDate := make(map[string]interval.Interval, len(intervals))
	for _, item := range intervals {
		byDate[timeutil.DateKey(item.Start)] = item
	}

	out := WeeklyReport{
		Week: week,
		Days: make([]DayRow, 0, 7),
	}
	for i := 0; i < 7; i++ {
		day := week.Monday.AddDate(0, 0, i)
		row := DayRow{Date: day}

		if item, ok := byDate[timeutil.DateKey(day)]; ok {
			row.Interval = &item
			row.ClockIn = item.Start.Format("15:04")
			row.ClockOut = item.End.Format("15:04")
			row.Hours = item.DurationHours
			row.OvertimeHours = max(0, item.DurationHours-OvertimeThreshold)
			row.Shift = item.Shift
		}

		out.Totals.Hours += row.Hours
		out.Totals.OvertimeHours += row.OvertimeHours
		out.Days = append(out.Days, row)
	}

	return out
}

// ParseSelection turns a YYYY-MM-DD selection into a local date. An empty
// selection is an InvalidSelection error.
func ParseSelection(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apperr.InvalidSelection("please select a day first")
	}
	parsed, err := time.ParseInLocation(timeutil.DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, apperr.InvalidSelection(fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", raw))
	}
	return parsed, nil
}
