package assertion

import (
	"time"

	"digital.vasic.assertions/pkg/config"
	"digital.vasic.assertions/pkg/format"
	"digital.vasic.assertions/pkg/logging"
)

// Assert evaluates assertions. It holds no mutable state and is
// safe for concurrent use.
type Assert struct {
	formatter *format.Formatter
	logger    logging.Logger
}

// Option configures an Assert.
type Option func(*Assert)

// WithFormatter sets the formatter used to render values.
func WithFormatter(f *format.Formatter) Option {
	return func(a *Assert) {
		if f != nil {
			a.formatter = f
		}
	}
}

// WithLogger sets the logger receiving assertion outcomes.
func WithLogger(l logging.Logger) Option {
	return func(a *Assert) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an Assert with the default formatter and no
// logging.
func New(opts ...Option) *Assert {
	a := &Assert{
		formatter: format.New(format.DefaultMaxDepth),
		logger:    logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FromConfig creates an Assert whose formatter and logger are
// built from cfg. Extra options are applied afterwards.
func FromConfig(cfg *config.Config, opts ...Option) (*Assert, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithFormatter(cfg.NewFormatter()),
		WithLogger(logger),
	}
	return New(append(base, opts...)...), nil
}

// Formatter returns the formatter used for diagnostics.
func (a *Assert) Formatter() *format.Formatter {
	return a.formatter
}

// Logger returns the logger receiving assertion outcomes.
func (a *Assert) Logger() logging.Logger {
	return a.logger
}

func (a *Assert) render(v any) string {
	return a.formatter.SafeFormat(v)
}

func (a *Assert) pass(name string) error {
	a.logger.LogAssertion(logging.AssertionLog{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Assertion: name,
		Passed:    true,
	})
	return Ok()
}

func (a *Assert) fail(name, base string, msgAndArgs ...any) error {
	return a.report(&Failure{
		Assertion: name,
		Base:      base,
		Custom:    customMessage(msgAndArgs...),
	})
}

func (a *Assert) report(f *Failure) error {
	a.logger.LogAssertion(logging.AssertionLog{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Assertion: f.Assertion,
		Passed:    false,
		Message:   f.Error(),
	})
	return f
}
