package docopt

import (
	"fmt"
	"strings"
)

// LanguageError reports a malformed doc: a missing or duplicated usage
// section, an unmatched bracket, an unexpected token in the pattern. It
// signals a mistake by the programmer who wrote the help text, never by the
// end user.
type LanguageError struct {
	Message string
	Code    int
}

func (e *LanguageError) Error() string { return e.Message }

func (e *LanguageError) ExitCode() int { return e.Code }

func languageErrorf(format string, args ...any) error {
	return &LanguageError{Message: fmt.Sprintf(format, args...), Code: 1}
}

// UserError reports an argument vector that does not conform to the usage:
// an unknown option, a missing argument, an ambiguous prefix, leftover
// tokens. Usage holds the usage section so callers can print it alongside
// the message.
type UserError struct {
	Message string
	Usage   string
	Code    int
}

func (e *UserError) Error() string {
	return strings.TrimSpace(e.Message + "\n" + e.Usage)
}

func (e *UserError) ExitCode() int { return e.Code }

func userErrorf(format string, args ...any) error {
	return &UserError{Message: fmt.Sprintf(format, args...), Code: 1}
}

// ExitError is the normal-termination signal raised by --help and
// --version. Message carries the text to print; Code is 0.
type ExitError struct {
	Message string
	Code    int
}

func (e *ExitError) Error() string { return e.Message }

func (e *ExitError) ExitCode() int { return e.Code }
