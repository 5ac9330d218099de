package assertion

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.assertions/pkg/config"
	"digital.vasic.assertions/pkg/format"
	"digital.vasic.assertions/pkg/logging"
	"digital.vasic.assertions/pkg/metrics"
)

type recordingLogger struct {
	logging.NullLogger
	entries []logging.AssertionLog
}

func (r *recordingLogger) LogAssertion(entry logging.AssertionLog) {
	r.entries = append(r.entries, entry)
}

func TestNew_Defaults(t *testing.T) {
	a := New()
	assert.Equal(t, format.DefaultMaxDepth, a.Formatter().MaxDepth())
	assert.IsType(t, logging.NullLogger{}, a.Logger())
}

func TestNew_NilOptionsKeepDefaults(t *testing.T) {
	a := New(WithFormatter(nil), WithLogger(nil))
	assert.NotNil(t, a.Formatter())
	assert.NotNil(t, a.Logger())
}

func TestAssert_LogsOutcomes(t *testing.T) {
	log := &recordingLogger{}
	a := New(WithLogger(log))

	require.NoError(t, a.Equal(1, 1))
	require.Error(t, a.Empty([]int{1}, "ctx"))

	require.Len(t, log.entries, 2)
	assert.Equal(t, "equal", log.entries[0].Assertion)
	assert.True(t, log.entries[0].Passed)
	assert.NotEmpty(t, log.entries[0].Timestamp)

	assert.Equal(t, "empty", log.entries[1].Assertion)
	assert.False(t, log.entries[1].Passed)
	assert.Contains(t, log.entries[1].Message, "to be empty")
	assert.Contains(t, log.entries[1].Message, "ctx")
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxDepth = 6
	cfg.LogFormat = config.LogJSON
	cfg.LogPath = filepath.Join(t.TempDir(), "assert.log")

	a, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 6, a.Formatter().MaxDepth())
	assert.IsType(t, &logging.JSONLogger{}, a.Logger())
	assert.NoError(t, a.Logger().Close())
}

func TestFromConfig_NilUsesDefaults(t *testing.T) {
	a, err := FromConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, format.DefaultMaxDepth, a.Formatter().MaxDepth())
}

func TestFromConfig_Invalid(t *testing.T) {
	cfg := config.Default()
	cfg.MaxDepth = 0
	_, err := FromConfig(cfg)
	require.Error(t, err)
}

func TestFromConfig_OptionsOverride(t *testing.T) {
	log := &recordingLogger{}
	a, err := FromConfig(config.Default(), WithLogger(log))
	require.NoError(t, err)
	assert.Same(t, log, a.Logger())
}

func TestAssert_CountsOutcomes(t *testing.T) {
	counter := metrics.NewCounter()
	a := New(WithLogger(logging.NewMultiLogger(logging.NullLogger{}, counter)))

	_ = a.Equal(1, 1)
	_ = a.Equal(1, 2)
	_ = a.Includes([]int{1}, 1)

	assert.Equal(t, 1, counter.Passed("equal"))
	assert.Equal(t, 1, counter.Failed("equal"))
	assert.Equal(t, 1, counter.Passed("includes"))
}
