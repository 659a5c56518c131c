package cli

import "errors"

// Exit codes for richtext, BSD sysexits style.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure is the generic failure code.
	ExitFailure = 1

	// ExitConfigError indicates configuration file or environment errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel error classes wrapped into command errors so main can map them
// to exit codes.
var (
	ErrConfig = errors.New("configuration error")
	ErrIO     = errors.New("i/o error")
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrIO):
		return ExitIOError
	default:
		return ExitFailure
	}
}
