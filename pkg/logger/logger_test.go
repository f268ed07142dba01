package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"garbage", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.input), "level %q", tt.input)
	}
}

func TestGenerateTraceID(t *testing.T) {
	t.Parallel()

	a := GenerateTraceID()
	b := GenerateTraceID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}

func TestWithCommandLogging(t *testing.T) {
	boom := errors.New("boom")

	err := WithCommandLogging("build", func() error { return boom })
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, WithCommandLogging("build", func() error { return nil }))
}

func TestFindWritableLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	path, err := FindWritableLogPath()
	assert.NoError(t, err)
	assert.NotEmpty(t, path)
}
