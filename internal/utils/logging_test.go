package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.Disabled},
		{0, zerolog.Disabled},
		{1, zerolog.ErrorLevel},
		{2, zerolog.WarnLevel},
		{3, zerolog.InfoLevel},
		{4, zerolog.DebugLevel},
		{9, zerolog.TraceLevel},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, verbosityToLevel(test.verbosity), "verbosity %d", test.verbosity)
	}
}

func TestLoggerContextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(nil)
	SetLogVerbosity(2)
	defer SetLogVerbosity(3)
	SetLogContext("node", "test-node")

	Logger().Info().Msg("dropped")
	Logger().Warn().Uint64("epoch", 7).Msg("kept")

	out := buf.String()
	assert.False(t, strings.Contains(out, "dropped"))
	assert.True(t, strings.Contains(out, `"message":"kept"`))
	assert.True(t, strings.Contains(out, `"node":"test-node"`))
	assert.True(t, strings.Contains(out, `"epoch":7`))
}
