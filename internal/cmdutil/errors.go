package cmdutil

import "fmt"

// ExitInterrupted is the status for a run stopped by SIGINT or SIGTERM,
// following the shell's 128+SIGINT convention.
const ExitInterrupted = 130

// ExitError ends the process with Code and prints nothing. Returning it
// instead of calling os.Exit lets deferred cleanup run.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// FlagError marks a usage mistake: a bad flag value or an unexpected
// argument. Main prints it with the command's usage and exits 2.
type FlagError struct {
	err error
}

func (e *FlagError) Error() string { return e.err.Error() }
func (e *FlagError) Unwrap() error { return e.err }

// FlagErrorf formats a new FlagError.
func FlagErrorf(format string, args ...any) error {
	return &FlagError{err: fmt.Errorf(format, args...)}
}

// FlagErrorWrap marks err, typically a pflag parse or config validation
// error, as a usage mistake.
func FlagErrorWrap(err error) error {
	return &FlagError{err: err}
}
