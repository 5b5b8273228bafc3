package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger("debug"))
	assert.True(t, L().Desugar().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, InitLogger("warn"))
	assert.False(t, L().Desugar().Core().Enabled(zapcore.InfoLevel))
}

func TestL_LazyInit(t *testing.T) {
	logger = nil
	l := L()
	require.NotNil(t, l)
	assert.Same(t, l, L())
}
