// Package format renders arbitrary values as text for assertion
// failure messages. Rendering never aborts: values that are
// cyclic or nested deeper than the configured limit fall back to
// a bounded plain-string conversion.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/kr/pretty"
)

// DefaultMaxDepth is the nesting limit used when a Formatter is
// built with a non-positive depth.
const DefaultMaxDepth = 32

// ErrTooDeep is returned by a Printer that gave up on a value
// because of its depth or a reference cycle.
var ErrTooDeep = errors.New("value too deep to render")

// Printer renders a value as text.
type Printer interface {
	Render(value any) (string, error)
}

// PrinterFunc adapts a function to the Printer interface.
type PrinterFunc func(value any) (string, error)

// Render calls f(value).
func (f PrinterFunc) Render(value any) (string, error) {
	return f(value)
}

// PrettyPrinter renders values as multi-line Go syntax.
type PrettyPrinter struct{}

// Render returns the kr/pretty rendering of value.
func (PrettyPrinter) Render(value any) (string, error) {
	return pretty.Sprint(value), nil
}

// Formatter turns values into diagnostic text.
type Formatter struct {
	printer  Printer
	maxDepth int
	plain    *spew.ConfigState
}

// New creates a Formatter using the pretty printer and the given
// depth limit.
func New(maxDepth int) *Formatter {
	return NewWithPrinter(PrettyPrinter{}, maxDepth)
}

// NewWithPrinter creates a Formatter that delegates to p.
func NewWithPrinter(p Printer, maxDepth int) *Formatter {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if p == nil {
		p = PrettyPrinter{}
	}
	return &Formatter{
		printer:  p,
		maxDepth: maxDepth,
		plain: &spew.ConfigState{
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
			MaxDepth:                maxDepth,
		},
	}
}

// MaxDepth returns the nesting limit.
func (f *Formatter) MaxDepth() int {
	return f.maxDepth
}

// SafeFormat renders value with the printer and trims
// surrounding whitespace. Cyclic or overly deep values, and
// values the printer rejects with ErrTooDeep, are rendered with
// Plain instead.
func (f *Formatter) SafeFormat(value any) string {
	if exceedsDepth(value, f.maxDepth) {
		return f.Plain(value)
	}

	out, err := f.printer.Render(value)
	if errors.Is(err, ErrTooDeep) {
		return f.Plain(value)
	}
	if err != nil {
		return fmt.Sprintf("<unrenderable %T: %v>", value, err)
	}
	return strings.TrimSpace(out)
}

// Plain is the plain string conversion of value. Errors and
// Stringers describe themselves; everything else goes through
// go-spew with the depth limit applied.
func (f *Formatter) Plain(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}
	return f.plain.Sprint(value)
}

var std = New(DefaultMaxDepth)

// SafeFormat formats value with the default Formatter.
func SafeFormat(value any) string {
	return std.SafeFormat(value)
}
