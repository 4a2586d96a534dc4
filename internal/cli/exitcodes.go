package cli

import (
	"errors"

	"github.com/yaklabco/gotok/internal/configloader"
	"github.com/yaklabco/gotok/pkg/fsutil"
	"github.com/yaklabco/gotok/pkg/runner"
)

// Exit codes for gotok.
const (
	// ExitSuccess indicates a clean run.
	ExitSuccess = 0

	// ExitProblems indicates a strict run found unknown text or
	// unterminated branches.
	ExitProblems = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration or rule set errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates that some inputs could not be read.
	ExitIOError = 74
)

var (
	// ErrUnterminated is returned under --strict when a branch reaches the
	// end of its input without its end delimiter.
	ErrUnterminated = errors.New("unterminated branches found")

	// ErrUnknownText is returned under --strict when text matched no rule.
	ErrUnknownText = errors.New("text matched no rule")

	// ErrInputFailed is returned when one or more inputs could not be read.
	ErrInputFailed = errors.New("some inputs could not be tokenized")

	// ErrConfig wraps configuration and rule set failures.
	ErrConfig = errors.New("invalid configuration")

	// ErrUsage wraps invalid flag values.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code for a finished run.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() {
		return ExitIOError
	}
	if strict && (result.HasUnterminated() || result.HasUnknown()) {
		return ExitProblems
	}
	return ExitSuccess
}

// resultError returns the error matching ExitCodeFromResult, or nil.
func resultError(result *runner.Result, strict bool) error {
	var errs []error
	if result.HasErrors() {
		errs = append(errs, ErrInputFailed)
	}
	if strict {
		if result.HasUnterminated() {
			errs = append(errs, ErrUnterminated)
		}
		if result.HasUnknown() {
			errs = append(errs, ErrUnknownText)
		}
	}
	return errors.Join(errs...)
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var verr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInputFailed), errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied):
		return ExitIOError
	case errors.Is(err, ErrUnterminated), errors.Is(err, ErrUnknownText):
		return ExitProblems
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &verr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsResultError reports whether err only signals problems already shown
// in the command output.
func IsResultError(err error) bool {
	return errors.Is(err, ErrUnterminated) || errors.Is(err, ErrUnknownText) || errors.Is(err, ErrInputFailed)
}
