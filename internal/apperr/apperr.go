// Package apperr defines the error kinds surfaced to the user as non-fatal
// notices.
package apperr

import (
	"errors"
	"fmt"
)

// Kind represents the category of error.
type Kind int

const (
	KindStorage Kind = iota + 1
	KindRender
	KindInvalidSelection
)

func (k Kind) String() string {
	switch k {
	case KindStorage:
		return "storage"
	case KindRender:
		return "render"
	case KindInvalidSelection:
		return "invalid_selection"
	default:
		return "unknown"
	}
}

// Error wraps a failed operation with its kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Storage(op string, err error) error {
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

func Render(op string, err error) error {
	return &Error{Kind: KindRender, Op: op, Err: err}
}

func InvalidSelection(reason string) error {
	return &Error{Kind: KindInvalidSelection, Op: reason}
}

// IsKind reports whether any error in err's chain is an *Error of kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// Title is a short heading for a user notice about err.
func Title(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return "Error"
	}
	switch appErr.Kind {
	case KindStorage:
		return "Storage error"
	case KindRender:
		return "Export error"
	case KindInvalidSelection:
		return "No selection"
	default:
		return "Error"
	}
}
