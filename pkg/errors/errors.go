package errors

import (
	"errors"
	"fmt"
)

// Process exit statuses. A FAIL verdict is data, not an exit status.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInputUnreadable = errors.New("input unreadable")
	ErrMalformedCounts = errors.New("malformed counts")
	ErrOutputWrite     = errors.New("output write failed")
	ErrInternal        = errors.New("internal error")
)

type AppError struct {
	Err     error
	Cause   error
	Message string
	Code    int
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Err.Error(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// ExitCode satisfies the interface{ ExitCode() int } convention used by main.
func (e *AppError) ExitCode() int {
	return e.Code
}

func New(sentinel error, code int, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: message,
		Code:    code,
	}
}

func Newf(sentinel error, code int, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	}
}

// Wrap tags cause with a sentinel. The message usually names the failing
// path.
func Wrap(sentinel error, cause error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Cause:   cause,
		Message: fmt.Sprintf(format, args...),
		Code:    ExitCode(sentinel),
	}
}

func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	switch {
	case errors.Is(err, ErrInvalidArgument):
		return ExitUsage
	default:
		return ExitFailure
	}
}
