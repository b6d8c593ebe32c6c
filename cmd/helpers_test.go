package cmd

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/huh"

	"timesheet/internal/apperr"
	"timesheet/interval"
	"timesheet/storage"
)

func TestResolveWeekSelection(t *testing.T) {
	t.Parallel()

	promptCalled := false
	prompt := func(value string, err error) func() (string, error) {
		return func() (string, error) {
			promptCalled = true
			return value, err
		}
	}

	t.Run("explicit date skips prompt", func(t *testing.T) {
		got, err := resolveWeekSelection("2024-03-06", true, prompt("", errors.New("unexpected")))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Format("2006-01-02") != "2024-03-06" {
			t.Fatalf("expected 2024-03-06, got %s", got)
		}
	})

	t.Run("non interactive without date is invalid selection", func(t *testing.T) {
		promptCalled = false
		_, err := resolveWeekSelection("", false, prompt("2024-03-06", nil))
		if !apperr.IsKind(err, apperr.KindInvalidSelection) {
			t.Fatalf("expected invalid selection, got %v", err)
		}
		if promptCalled {
			t.Fatalf("did not expect prompt without a terminal")
		}
	})

	t.Run("prompt value is used", func(t *testing.T) {
		got, err := resolveWeekSelection("", true, prompt("2024-01-01", nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Format("2006-01-02") != "2024-01-01" {
			t.Fatalf("expected 2024-01-01, got %s", got)
		}
	})

	t.Run("blank prompt is invalid selection", func(t *testing.T) {
		_, err := resolveWeekSelection("", true, prompt("  ", nil))
		if !apperr.IsKind(err, apperr.KindInvalidSelection) {
			t.Fatalf("expected invalid selection, got %v", err)
		}
	})

	t.Run("aborted prompt is invalid selection", func(t *testing.T) {
		_, err := resolveWeekSelection("", true, prompt("", huh.ErrUserAborted))
		if !apperr.IsKind(err, apperr.KindInvalidSelection) {
			t.Fatalf("expected invalid selection, got %v", err)
		}
	})

	t.Run("prompt failure is returned", func(t *testing.T) {
		_, err := resolveWeekSelection("", true, prompt("", errors.New("tty gone")))
		if err == nil || apperr.IsKind(err, apperr.KindInvalidSelection) {
			t.Fatalf("expected plain prompt error, got %v", err)
		}
	})
}

func TestValidateOptionalDate(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"", "  ", "2024-02-29"} {
		if err := validateOptionalDate(value); err != nil {
			t.Fatalf("expected %q to be valid, got %v", value, err)
		}
	}
	for _, value := range []string{"2024-02-30", "06.03.2024", "2024-3-6"} {
		if err := validateOptionalDate(value); err == nil {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	t.Parallel()

	if _, _, bounded, err := parseDateRange("", ""); err != nil || bounded {
		t.Fatalf("expected unbounded range, got bounded=%v err=%v", bounded, err)
	}

	from, to, bounded, err := parseDateRange("2024-03-01", "")
	if err != nil || !bounded {
		t.Fatalf("expected bounded range, got bounded=%v err=%v", bounded, err)
	}
	if from.Format("2006-01-02") != "2024-03-01" || to.Year() != 9999 {
		t.Fatalf("unexpected open-ended range %s..%s", from, to)
	}

	if _, _, _, err := parseDateRange("2024-03-10", "2024-03-01"); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	if _, _, _, err := parseDateRange("2024/03/01", ""); err == nil {
		t.Fatalf("expected error for invalid --from")
	}
}

func TestLoadRawIntervals(t *testing.T) {
	t.Parallel()

	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "raw.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	for _, day := range []int{1, 15, 31} {
		start := time.Date(2024, 3, day, 9, 0, 0, 0, time.Local)
		item, err := interval.New(start, start.Add(8*time.Hour))
		if err != nil {
			t.Fatalf("new interval: %v", err)
		}
		if _, err := store.Append(item); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := loadRawIntervals(store, time.Time{}, time.Time{}, false)
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 intervals, got %d", len(all))
	}

	from, to, _, err := parseDateRange("2024-03-10", "2024-03-31")
	if err != nil {
		t.Fatalf("parse range: %v", err)
	}
	ranged, err := loadRawIntervals(store, from, to, true)
	if err != nil {
		t.Fatalf("load range: %v", err)
	}
	if len(ranged) != 2 {
		t.Fatalf("expected 2 intervals in range, got %d", len(ranged))
	}
}
