package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet/internal/apperr"
	"timesheet/internal/timeutil"
	"timesheet/interval"
	"timesheet/shift"
)

type fakeStore struct {
	intervals []interval.Interval
	err       error
	from, to  time.Time
}

func (f *fakeStore) QueryRange(from, to time.Time) ([]interval.Interval, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	return f.intervals, nil
}

func local(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}

func mustInterval(t *testing.T, start, end time.Time) interval.Interval {
	t.Helper()
	item, err := interval.New(start, end)
	require.NoError(t, err)
	return item
}

func TestWeekOf_SameWeekForEveryDay(t *testing.T) {
	t.Parallel()

	tuesday := WeekOf(local(2024, time.March, 5, 10, 0))
	sunday := WeekOf(local(2024, time.March, 10, 23, 30))

	assert.Equal(t, tuesday, sunday)
	assert.Equal(t, 2024, tuesday.ISOYear)
	assert.Equal(t, 10, tuesday.ISOWeek)
	assert.Equal(t, "2024-03-04", timeutil.DateKey(tuesday.Monday))
	assert.Equal(t, "2024-03-10", timeutil.DateKey(tuesday.Sunday))
}

func TestWeekOf_ISOYearBoundary(t *testing.T) {
	t.Parallel()

	week := WeekOf(local(2021, time.January, 1, 12, 0))
	assert.Equal(t, 2020, week.ISOYear)
	assert.Equal(t, 53, week.ISOWeek)
	assert.Equal(t, "2020-12-28", timeutil.DateKey(week.Monday))

	week = WeekOf(local(2024, time.December, 30, 12, 0))
	assert.Equal(t, 2025, week.ISOYear)
	assert.Equal(t, 1, week.ISOWeek)
}

func TestWeek_Title(t *testing.T) {
	t.Parallel()

	week := WeekOf(local(2024, time.January, 3, 9, 0))
	assert.Equal(t, "Timesheet - Week 1 (2024-01-01 to 2024-01-07)", week.Title())
	assert.Equal(t, "2024-W01", week.Label())
}

func TestBuildWeekly_AlwaysSevenRows(t *testing.T) {
	t.Parallel()

	for count := 0; count <= 7; count++ {
		intervals := make([]interval.Interval, 0, count)
		for i := 0; i < count; i++ {
			intervals = append(intervals, mustInterval(t, local(2024, time.March, 4+i, 9, 0), local(2024, time.March, 4+i, 17, 0)))
		}

		got, err := BuildWeekly(local(2024, time.March, 6, 12, 0), &fakeStore{intervals: intervals})
		require.NoError(t, err)
		require.Len(t, got.Days, 7, "with %d intervals", count)

		for i, row := range got.Days {
			assert.Equal(t, timeutil.DateKey(local(2024, time.March, 4+i, 0, 0)), timeutil.DateKey(row.Date))
			assert.Equal(t, i >= count, row.Empty(), "day %d with %d intervals", i, count)
		}
		assert.InDelta(t, float64(count)*8, got.Totals.Hours, 1e-9)
	}
}

func TestBuildWeekly_QueriesMondayToSunday(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	_, err := BuildWeekly(local(2024, time.March, 10, 8, 0), store)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-04", timeutil.DateKey(store.from))
	assert.Equal(t, "2024-03-10", timeutil.DateKey(store.to))
}

func TestBuildWeekly_PopulatedRowAndOvertime(t *testing.T) {
	t.Parallel()

	item := mustInterval(t, time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local), time.Date(2024, 3, 4, 17, 30, 0, 0, time.Local))
	got, err := BuildWeekly(local(2024, time.March, 4, 0, 0), &fakeStore{intervals: []interval.Interval{item}})
	require.NoError(t, err)

	monday := got.Days[0]
	require.False(t, monday.Empty())
	assert.Equal(t, "09:00", monday.ClockIn)
	assert.Equal(t, "17:30", monday.ClockOut)
	assert.Equal(t, 8.5, monday.Hours)
	assert.InDelta(t, 0.5, monday.OvertimeHours, 1e-9)
	assert.Equal(t, shift.Overday, monday.Shift)

	tuesday := got.Days[1]
	assert.True(t, tuesday.Empty())
	assert.Zero(t, tuesday.Hours)
	assert.Zero(t, tuesday.OvertimeHours)
	assert.Equal(t, shift.None, tuesday.Shift)

	assert.Equal(t, 8.5, got.Totals.Hours)
	assert.InDelta(t, 0.5, got.Totals.OvertimeHours, 1e-9)
}

func TestBuildWeekly_UsesStoredHoursAndKeepsMissingShiftBlank(t *testing.T) {
	t.Parallel()

	legacy := interval.Interval{
		ID:            7,
		Start:         local(2024, time.March, 5, 22, 0),
		End:           local(2024, time.March, 6, 7, 0),
		DurationHours: 9.01,
	}
	got, err := BuildWeekly(local(2024, time.March, 5, 0, 0), &fakeStore{intervals: []interval.Interval{legacy}})
	require.NoError(t, err)

	row := got.Days[1]
	assert.Equal(t, 9.01, row.Hours)
	assert.InDelta(t, 1.01, row.OvertimeHours, 1e-9)
	assert.Equal(t, shift.None, row.Shift)
	assert.Equal(t, "22:00", row.ClockIn)
	assert.Equal(t, "07:00", row.ClockOut)
}

func TestBuildWeekly_SameDateLastIntervalWins(t *testing.T) {
	t.Parallel()

	first := mustInterval(t, local(2024, time.March, 7, 6, 0), local(2024, time.March, 7, 9, 0))
	second := mustInterval(t, local(2024, time.March, 7, 15, 0), local(2024, time.March, 7, 20, 0))

	got, err := BuildWeekly(local(2024, time.March, 7, 0, 0), &fakeStore{intervals: []interval.Interval{first, second}})
	require.NoError(t, err)

	row := got.Days[3]
	assert.Equal(t, "15:00", row.ClockIn)
	assert.Equal(t, 5.0, row.Hours)
	assert.Equal(t, shift.Mid, row.Shift)
	assert.Equal(t, 5.0, got.Totals.Hours)
}

func TestBuildWeekly_StoreFailureIsStorageError(t *testing.T) {
	t.Parallel()

	cause := errors.New("database is locked")
	got, err := BuildWeekly(local(2024, time.March, 7, 0, 0), &fakeStore{err: cause})

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindStorage))
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, got.Days)
}

func TestParseSelection(t *testing.T) {
	t.Parallel()

	_, err := ParseSelection("   ")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidSelection))

	_, err = ParseSelection("03/04/2024")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidSelection))

	got, err := ParseSelection("2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", timeutil.DateKey(got))
}
