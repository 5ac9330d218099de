package assertion

import (
	"errors"
	"fmt"
	"strings"
)

// Separator terminates every failure message.
var Separator = strings.Repeat("-", 25)

// Failure is the error returned by a failing assertion.
type Failure struct {
	// Assertion names the predicate that failed.
	Assertion string
	// Base is the generated diagnostic.
	Base string
	// Custom is the caller-supplied message, if any.
	Custom string
}

// Error renders the trimmed diagnostic, the custom message
// separated by a blank line, and the trailing separator.
func (f *Failure) Error() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(f.Base))
	if custom := strings.TrimSpace(f.Custom); custom != "" {
		b.WriteString("\n\n")
		b.WriteString(custom)
	}
	b.WriteString("\n")
	b.WriteString(Separator)
	return b.String()
}

// Ok is the outcome of a passing assertion.
func Ok() error {
	return nil
}

// IsFailure reports whether err is, or wraps, an assertion
// failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

// customMessage builds the caller's message from testify-style
// msgAndArgs: a single value is printed as is, and a leading
// format string is applied to the rest. It only formats through
// Sprintf so vet does not treat the predicates as Print wrappers.
func customMessage(msgAndArgs ...any) string {
	switch len(msgAndArgs) {
	case 0:
		return ""
	case 1:
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%+v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%+v", msgAndArgs)
}
