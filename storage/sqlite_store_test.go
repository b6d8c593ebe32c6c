package storage

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"timesheet/interval"
	"timesheet/shift"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "timesheet_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustParseTimestamp(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation(interval.TimestampLayout, value, time.Local)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func mustInterval(t *testing.T, start, end string) interval.Interval {
	t.Helper()
	item, err := interval.New(mustParseTimestamp(t, start), mustParseTimestamp(t, end))
	if err != nil {
		t.Fatalf("new interval: %v", err)
	}
	return item
}

func TestSQLiteStore_AppendAndQueryRange(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	items := []interval.Interval{
		mustInterval(t, "2024-03-05 14:00:00", "2024-03-05 22:15:00"),
		mustInterval(t, "2024-03-04 09:00:00", "2024-03-04 17:30:00"),
		mustInterval(t, "2024-03-10 22:00:00", "2024-03-11 06:00:00"),
		mustInterval(t, "2024-03-11 06:00:00", "2024-03-11 14:00:00"),
		mustInterval(t, "2024-03-03 06:00:00", "2024-03-03 14:00:00"),
	}
	for _, item := range items {
		if _, err := store.Append(item); err != nil {
			t.Fatalf("append interval: %v", err)
		}
	}

	got, err := store.QueryRange(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local),
	)
	if err != nil {
		t.Fatalf("query range: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 intervals in range, got %d", len(got))
	}

	wantStarts := []string{"2024-03-04 09:00:00", "2024-03-05 14:00:00", "2024-03-10 22:00:00"}
	for i, want := range wantStarts {
		if gotStart := got[i].Start.Format(interval.TimestampLayout); gotStart != want {
			t.Fatalf("expected interval %d to start at %s, got %s", i, want, gotStart)
		}
	}

	if got[0].DurationHours != 8.5 || got[0].Shift != shift.Overday {
		t.Fatalf("unexpected first interval: %+v", got[0])
	}
	if got[1].Shift != shift.Mid {
		t.Fatalf("expected Mid for afternoon interval, got %s", got[1].Shift)
	}
	if got[2].Shift != shift.Night {
		t.Fatalf("expected Night for overnight interval, got %s", got[2].Shift)
	}
}

func TestSQLiteStore_AppendTruncatesToSeconds(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	start := time.Date(2024, 3, 4, 9, 0, 0, 750_000_000, time.Local)
	item, err := interval.New(start, start.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("new interval: %v", err)
	}

	id, err := store.Append(item)
	if err != nil {
		t.Fatalf("append interval: %v", err)
	}

	got, err := store.GetInterval(id)
	if err != nil {
		t.Fatalf("get interval: %v", err)
	}
	if got.Start.Nanosecond() != 0 || got.Start.Format(interval.TimestampLayout) != "2024-03-04 09:00:00" {
		t.Fatalf("expected second precision start, got %v", got.Start)
	}
	if got.DurationHours != 1.5 {
		t.Fatalf("expected 1.50 hours, got %.2f", got.DurationHours)
	}
}

func TestSQLiteStore_AppendRejectsInvertedInterval(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)
	_, err := store.Append(interval.Interval{Start: start, End: start})
	if !errors.Is(err, interval.ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestSQLiteStore_GetIntervalNotFound(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	if _, err := store.GetInterval(42); !errors.Is(err, ErrIntervalNotFound) {
		t.Fatalf("expected ErrIntervalNotFound, got %v", err)
	}
	if _, err := store.GetInterval(0); err == nil {
		t.Fatalf("expected error for id 0")
	}
}

func createLegacyDatabase(t *testing.T, path string) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open legacy db: %v", err)
	}
	defer db.Close()

	statements := []string{
		`CREATE TABLE shifts (id INTEGER PRIMARY KEY, clock_in TEXT, clock_out TEXT, duration REAL);`,
		`INSERT INTO shifts (clock_in, clock_out, duration) VALUES ('2024-03-04 09:00:00', '2024-03-04 17:00:00', 8.0);`,
		`INSERT INTO shifts (clock_in, clock_out, duration) VALUES ('2024-03-05 21:00:00', '2024-03-06 05:00:00', 8.0);`,
		`INSERT INTO shifts (clock_in, clock_out, duration) VALUES ('not a time', '2024-03-06 05:00:00', 1.0);`,
		`INSERT INTO shifts (clock_in, clock_out, duration) VALUES ('2024-03-07 09:00:00', NULL, NULL);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}

func readShiftCodes(t *testing.T, store *SQLiteStore) map[int64]string {
	t.Helper()

	rows, err := store.db.Query(`SELECT id, COALESCE(shift, '') FROM shifts ORDER BY id;`)
	if err != nil {
		t.Fatalf("query shift codes: %v", err)
	}
	defer rows.Close()

	out := make(map[int64]string)
	for rows.Next() {
		var (
			id   int64
			code string
		)
		if err := rows.Scan(&id, &code); err != nil {
			t.Fatalf("scan shift code: %v", err)
		}
		out[id] = code
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate shift codes: %v", err)
	}
	return out
}

func TestOpenSQLite_MigratesAndBackfillsLegacyDatabase(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "legacy.db")
	createLegacyDatabase(t, dbPath)

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open legacy sqlite: %v", err)
	}
	defer store.Close()

	if store.Backfilled() != 2 {
		t.Fatalf("expected 2 rows labeled on open, got %d", store.Backfilled())
	}

	codes := readShiftCodes(t, store)
	want := map[int64]string{1: "O", 2: "N", 3: "", 4: ""}
	for id, code := range want {
		if codes[id] != code {
			t.Fatalf("expected row %d shift %q, got %q", id, code, codes[id])
		}
	}

	updated, err := store.BackfillShifts()
	if err != nil {
		t.Fatalf("second backfill: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected second backfill to be a no-op, updated %d", updated)
	}
	if again := readShiftCodes(t, store); len(again) != len(codes) || again[1] != codes[1] || again[2] != codes[2] {
		t.Fatalf("expected backfill to be idempotent, got %v then %v", codes, again)
	}
}

func TestBackfillShifts_KeepsExistingLabels(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	if _, err := store.db.Exec(
		`INSERT INTO shifts (clock_in, clock_out, duration, shift) VALUES ('2024-03-04 09:00:00', '2024-03-04 17:00:00', 8.0, 'N');`,
	); err != nil {
		t.Fatalf("insert labeled row: %v", err)
	}
	if _, err := store.db.Exec(
		`INSERT INTO shifts (clock_in, clock_out, duration, shift) VALUES ('2024-03-05 14:00:00', '2024-03-05 22:00:00', 8.0, '');`,
	); err != nil {
		t.Fatalf("insert unlabeled row: %v", err)
	}

	updated, err := store.BackfillShifts()
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 backfilled row, got %d", updated)
	}

	codes := readShiftCodes(t, store)
	if codes[1] != "N" {
		t.Fatalf("expected stored label to be kept, got %q", codes[1])
	}
	if codes[2] != "M" {
		t.Fatalf("expected backfilled Mid label, got %q", codes[2])
	}
}

func TestSQLiteStore_QueryRangeTreatsUnknownLabelAsUnlabeled(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	if _, err := store.db.Exec(
		`INSERT INTO shifts (clock_in, clock_out, duration, shift) VALUES ('2024-03-04 09:00:00', '2024-03-04 17:00:00', 8.0, 'D');`,
	); err != nil {
		t.Fatalf("insert row with unknown label: %v", err)
	}
	if _, err := store.db.Exec(
		`INSERT INTO shifts (clock_in, clock_out, duration, shift) VALUES ('2024-03-05 14:00:00', '2024-03-05 22:00:00', 8.0, 'M');`,
	); err != nil {
		t.Fatalf("insert labeled row: %v", err)
	}

	items, err := store.QueryRange(mustParseTimestamp(t, "2024-03-04 00:00:00"), mustParseTimestamp(t, "2024-03-10 00:00:00"))
	if err != nil {
		t.Fatalf("query range with unknown label: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(items))
	}
	if items[0].Shift != shift.None || items[0].DurationHours != 8 {
		t.Fatalf("expected unknown label to read as unlabeled, got %+v", items[0])
	}
	if items[1].Shift != shift.Mid {
		t.Fatalf("expected Mid label to be kept, got %v", items[1].Shift)
	}
}

func TestSQLiteStore_ListIntervalsSkipsOpenRows(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "legacy.db")
	createLegacyDatabase(t, dbPath)

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open legacy sqlite: %v", err)
	}
	defer store.Close()

	if _, err := store.db.Exec(`DELETE FROM shifts WHERE clock_in = 'not a time';`); err != nil {
		t.Fatalf("delete unparsable row: %v", err)
	}

	items, err := store.ListIntervals()
	if err != nil {
		t.Fatalf("list intervals: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 completed intervals, got %d", len(items))
	}
	if items[1].Shift != shift.Night {
		t.Fatalf("expected backfilled Night label, got %s", items[1].Shift)
	}
}
