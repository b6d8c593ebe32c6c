package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"timesheet/internal/timeutil"
	"timesheet/interval"
	"timesheet/shift"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db         *sql.DB
	backfilled int
}

var ErrIntervalNotFound = errors.New("interval not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	labeled, err := store.BackfillShifts()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store.backfilled = labeled
	if labeled > 0 {
		slog.Info("backfilled missing shift labels", "rows", labeled, "file", path)
	}

	return store, nil
}

// Backfilled reports how many rows were labeled while opening the store.
func (s *SQLiteStore) Backfilled() int {
	return s.backfilled
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	// Older databases were created without the shift column; it is added
	// below and filled by BackfillShifts.
	const schema = `
CREATE TABLE IF NOT EXISTS shifts (
	id INTEGER PRIMARY KEY,
	clock_in TEXT,
	clock_out TEXT,
	duration REAL
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := s.ensureShiftColumn(); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) ensureShiftColumn() error {
	rows, err := s.db.Query(`PRAGMA table_info(shifts);`)
	if err != nil {
		return fmt.Errorf("query table info: %w", err)
	}
	defer rows.Close()

	hasShift := false
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scan table info: %w", err)
		}
		if strings.EqualFold(name, "shift") {
			hasShift = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate table info: %w", err)
	}

	if hasShift {
		return nil
	}

	if _, err := s.db.Exec(`ALTER TABLE shifts ADD COLUMN shift TEXT;`); err != nil {
		return fmt.Errorf("add shift column: %w", err)
	}

	return nil
}

// BackfillShifts labels completed rows that have no shift yet. Rows whose
// timestamps cannot be parsed, or whose end is not after the start, are left
// alone. Labeled rows are never touched, so running it again is a no-op.
func (s *SQLiteStore) BackfillShifts() (int, error) {
	const query = `
SELECT id, clock_in, clock_out
FROM shifts
WHERE (shift IS NULL OR shift = '')
	AND clock_in IS NOT NULL
	AND clock_out IS NOT NULL;
`

	type pending struct {
		id    int64
		label shift.Label
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return 0, fmt.Errorf("query unlabeled shifts: %w", err)
	}

	updates := make([]pending, 0)
	for rows.Next() {
		var (
			id       int64
			startRaw string
			endRaw   string
		)
		if err := rows.Scan(&id, &startRaw, &endRaw); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("scan unlabeled shift: %w", err)
		}

		start, startErr := parseTimestamp(startRaw)
		end, endErr := parseTimestamp(endRaw)
		if startErr != nil || endErr != nil || !end.After(start) {
			continue
		}
		updates = append(updates, pending{id: id, label: shift.Classify(start, end)})
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, fmt.Errorf("iterate unlabeled shifts: %w", err)
	}
	_ = rows.Close()

	if len(updates) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`UPDATE shifts SET shift = ? WHERE id = ? AND (shift IS NULL OR shift = '');`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare backfill statement: %w", err)
	}
	defer stmt.Close()

	updated := 0
	for _, update := range updates {
		res, err := stmt.Exec(update.label.Code(), update.id)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("backfill shift %d: %w", update.id, err)
		}
		affected, err := res.RowsAffected()
		if err == nil && affected > 0 {
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit backfill transaction: %w", err)
	}

	return updated, nil
}

// Append inserts one completed interval and returns its row ID.
func (s *SQLiteStore) Append(item interval.Interval) (int64, error) {
	if !item.End.After(item.Start) {
		return 0, interval.ErrInvalidInterval
	}

	const insertStmt = `
INSERT INTO shifts (
	clock_in,
	clock_out,
	duration,
	shift
) VALUES (?, ?, ?, ?);`

	res, err := s.db.Exec(
		insertStmt,
		formatTimestamp(item.Start),
		formatTimestamp(item.End),
		interval.RoundHours(item.DurationHours),
		item.Shift.Code(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert interval: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted row id: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid inserted row id %d", id)
	}
	return id, nil
}

const selectColumns = `
SELECT
	id,
	clock_in,
	clock_out,
	duration,
	shift
FROM shifts
`

// QueryRange returns completed intervals whose start date lies within
// [from, to], ordered by start.
func (s *SQLiteStore) QueryRange(from, to time.Time) ([]interval.Interval, error) {
	query := selectColumns + `
WHERE clock_out IS NOT NULL
	AND date(clock_in) BETWEEN ? AND ?
ORDER BY clock_in, id;
`
	return s.queryIntervals(query, timeutil.DateKey(from), timeutil.DateKey(to))
}

func (s *SQLiteStore) ListIntervals() ([]interval.Interval, error) {
	query := selectColumns + `
WHERE clock_out IS NOT NULL
ORDER BY clock_in, id;
`
	return s.queryIntervals(query)
}

// GetInterval returns one interval by ID.
func (s *SQLiteStore) GetInterval(id int64) (interval.Interval, error) {
	if id <= 0 {
		return interval.Interval{}, fmt.Errorf("interval id must be > 0")
	}

	items, err := s.queryIntervals(selectColumns+`WHERE id = ?;`, id)
	if err != nil {
		return interval.Interval{}, err
	}
	if len(items) == 0 {
		return interval.Interval{}, ErrIntervalNotFound
	}
	return items[0], nil
}

func (s *SQLiteStore) queryIntervals(query string, args ...any) ([]interval.Interval, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query intervals: %w", err)
	}
	defer rows.Close()

	items := make([]interval.Interval, 0, 16)
	for rows.Next() {
		var (
			item     interval.Interval
			startRaw sql.NullString
			endRaw   sql.NullString
			duration sql.NullFloat64
			code     sql.NullString
		)

		if err := rows.Scan(&item.ID, &startRaw, &endRaw, &duration, &code); err != nil {
			return nil, fmt.Errorf("scan interval: %w", err)
		}

		item.Start, err = parseTimestamp(startRaw.String)
		if err != nil {
			return nil, fmt.Errorf("parse clock_in %q: %w", startRaw.String, err)
		}
		item.End, err = parseTimestamp(endRaw.String)
		if err != nil {
			return nil, fmt.Errorf("parse clock_out %q: %w", endRaw.String, err)
		}
		item.DurationHours = duration.Float64
		item.Shift, err = shift.ParseLabel(code.String)
		if err != nil {
			slog.Warn("ignoring stored shift label", "id", item.ID, "shift", code.String, "error", err)
			item.Shift = shift.None
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate intervals: %w", err)
	}

	return items, nil
}

func formatTimestamp(value time.Time) string {
	return value.In(time.Local).Format(interval.TimestampLayout)
}

func parseTimestamp(raw string) (time.Time, error) {
	return time.ParseInLocation(interval.TimestampLayout, strings.TrimSpace(raw), time.Local)
}
