package web

import (
	"fmt"

	"timesheet/internal/timeutil"
	"timesheet/interval"
	"timesheet/output"
	"timesheet/report"
	"timesheet/session"
)

type DayView struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	ClockIn  string `json:"clock_in"`
	ClockOut string `json:"clock_out"`
	Hours    string `json:"hours"`
	Overtime string `json:"overtime"`
	Shift    string `json:"shift"`
	Color    string `json:"color"`
	Empty    bool   `json:"empty"`
}

type WeekView struct {
	Label         string    `json:"week"`
	Title         string    `json:"title"`
	Monday        string    `json:"monday"`
	Sunday        string    `json:"sunday"`
	PreviousDate  string    `json:"previous_date"`
	NextDate      string    `json:"next_date"`
	Days          []DayView `json:"days"`
	TotalHours    string    `json:"total_hours"`
	TotalOvertime string    `json:"total_overtime"`
}

type StatusView struct {
	ClockedIn      bool   `json:"clocked_in"`
	SessionID      string `json:"session_id,omitempty"`
	ClockIn        string `json:"clock_in,omitempty"`
	Elapsed        string `json:"elapsed"`
	ElapsedSeconds int64  `json:"elapsed_seconds"`
	Shift          string `json:"shift,omitempty"`
	ShiftName      string `json:"shift_name,omitempty"`
	Color          string `json:"color,omitempty"`
}

type IntervalView struct {
	ID       int64   `json:"id"`
	ClockIn  string  `json:"clock_in"`
	ClockOut string  `json:"clock_out"`
	Hours    float64 `json:"hours"`
	Shift    string  `json:"shift"`
}

func BuildWeekView(weekly report.WeeklyReport) WeekView {
	view := WeekView{
		Label:         weekly.Label(),
		Title:         weekly.Title(),
		Monday:        timeutil.DateKey(weekly.Monday),
		Sunday:        timeutil.DateKey(weekly.Sunday),
		PreviousDate:  timeutil.DateKey(weekly.Monday.AddDate(0, 0, -7)),
		NextDate:      timeutil.DateKey(weekly.Monday.AddDate(0, 0, 7)),
		Days:          make([]DayView, 0, len(weekly.Days)),
		TotalHours:    fmtHours(weekly.Totals.Hours),
		TotalOvertime: fmtHours(weekly.Totals.OvertimeHours),
	}

	for _, day := range weekly.Days {
		row := DayView{
			Date:    timeutil.DateKey(day.Date),
			Weekday: day.Date.Weekday().String()[:3],
			Empty:   day.Empty(),
		}
		if !day.Empty() {
			row.ClockIn = day.ClockIn
			row.ClockOut = day.ClockOut
			row.Hours = fmtHours(day.Hours)
			row.Overtime = fmtHours(day.OvertimeHours)
			row.Shift = day.Shift.Code()
			row.Color = output.RowColor(day.Shift).Hex()
		}
		view.Days = append(view.Days, row)
	}
	return view
}

func BuildStatusView(running session.Running, open bool) StatusView {
	if !open {
		return StatusView{Elapsed: timeutil.FormatElapsed(0)}
	}
	return StatusView{
		ClockedIn:      true,
		SessionID:      running.Session.ID.String(),
		ClockIn:        running.Session.Start.Format(interval.TimestampLayout),
		Elapsed:        timeutil.FormatElapsed(running.Elapsed),
		ElapsedSeconds: int64(running.Elapsed.Seconds()),
		Shift:          running.Shift.Code(),
		ShiftName:      running.Shift.Name(),
		Color:          output.RowColor(running.Shift).Hex(),
	}
}

func BuildIntervalView(item interval.Interval) IntervalView {
	return IntervalView{
		ID:       item.ID,
		ClockIn:  item.Start.Format(interval.TimestampLayout),
		ClockOut: item.End.Format(interval.TimestampLayout),
		Hours:    item.DurationHours,
		Shift:    item.Shift.Code(),
	}
}

func fmtHours(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
