package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(ErrInvalidArgument))
	assert.Equal(t, ExitUsage, ExitCode(fmt.Errorf("flag --k: %w", ErrInvalidArgument)))
	assert.Equal(t, ExitFailure, ExitCode(ErrInputUnreadable))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
	assert.Equal(t, 7, ExitCode(New(ErrInternal, 7, "custom")))
}

func TestWrapKeepsSentinelAndCause(t *testing.T) {
	err := Wrap(ErrInputUnreadable, fs.ErrNotExist, "reading %s", "full.txt")

	assert.True(t, errors.Is(err, ErrInputUnreadable))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, ExitFailure, err.ExitCode())
	assert.Equal(t, "input unreadable: reading full.txt: file does not exist", err.Error())
}

func TestWrapUsageError(t *testing.T) {
	err := Wrap(ErrInvalidArgument, errors.New("bad"), "--k")
	assert.Equal(t, ExitUsage, ExitCode(fmt.Errorf("outer: %w", err)))
}

func TestNewf(t *testing.T) {
	err := Newf(ErrMalformedCounts, ExitFailure, "%s: value for %q is not a number", "counts.json", "cat")
	assert.True(t, errors.Is(err, ErrMalformedCounts))
	assert.Equal(t, `malformed counts: counts.json: value for "cat" is not a number`, err.Error())
}
