package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"timesheet/config"
	"timesheet/internal/apperr"
	"timesheet/internal/timeutil"
	"timesheet/report"
	"timesheet/storage"
)

func openStore(cfg *config.Config) (*storage.SQLiteStore, error) {
	store, err := storage.OpenSQLite(cfg.Storage.DBPath)
	if err != nil {
		return nil, apperr.Storage("open "+cfg.Storage.DBPath, err)
	}
	return store, nil
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// resolveWeekSelection picks the date whose week is reported. An explicit
// value wins; otherwise the prompt asks when interactive is set. Anything
// else, including a cancelled prompt, is an empty selection.
func resolveWeekSelection(raw string, interactive bool, prompt func() (string, error)) (time.Time, error) {
	if strings.TrimSpace(raw) != "" || !interactive || prompt == nil {
		return report.ParseSelection(raw)
	}

	value, err := prompt()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return report.ParseSelection("")
		}
		return time.Time{}, fmt.Errorf("read week selection: %w", err)
	}
	return report.ParseSelection(value)
}

func promptWeekDate() (string, error) {
	value := timeutil.DateKey(time.Now())
	err := huh.NewInput().
		Title("Week to export").
		Description("Any day of the week, YYYY-MM-DD. Leave blank to cancel.").
		Placeholder(value).
		Value(&value).
		Validate(validateOptionalDate).
		Run()
	return value, err
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(timeutil.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// parseDateRange parses optional --from/--to dates. A missing bound is open.
func parseDateRange(fromValue, toValue string) (time.Time, time.Time, bool, error) {
	parse := func(flag, raw string) (time.Time, bool, error) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return time.Time{}, false, nil
		}
		value, err := time.ParseInLocation(timeutil.DateLayout, raw, time.Local)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("invalid --%s value %q (expected YYYY-MM-DD)", flag, raw)
		}
		return value, true, nil
	}

	from, hasFrom, err := parse("from", fromValue)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	to, hasTo, err := parse("to", toValue)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if !hasFrom && !hasTo {
		return time.Time{}, time.Time{}, false, nil
	}
	if !hasTo {
		to = time.Date(9999, 12, 31, 0, 0, 0, 0, time.Local)
	}
	if hasFrom && hasTo && from.After(to) {
		return time.Time{}, time.Time{}, false, fmt.Errorf("invalid range: --from must be <= --to")
	}
	return from, to, true, nil
}
