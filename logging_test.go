package gekko

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogger_Routing(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewLogger("w04", LogInfo, &out, &errOut)

	logger.Debugf("hidden %d", 1)
	logger.Infof("level %d", 3)
	logger.Warnf("slow frame")
	logger.Errorf("device lost")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[w04] INFO: level 3")
	assert.Contains(t, errOut.String(), "[w04] WARN: slow frame")
	assert.Contains(t, errOut.String(), "[w04] ERROR: device lost")
	assert.NotContains(t, out.String(), "WARN")
}

func TestDefaultLogger_SetLevel(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger("", LogInfo, &out, &out)
	assert.Equal(t, LogInfo, logger.Level())

	logger.SetLevel(LogDebug)
	logger.Debugf("frame %d", 7)
	assert.Contains(t, out.String(), "DEBUG: frame 7")
	assert.NotContains(t, out.String(), "[")

	out.Reset()
	logger.SetLevel(LogError)
	logger.Infof("resized")
	logger.Warnf("slow frame")
	logger.Errorf("device lost")
	assert.NotContains(t, out.String(), "resized")
	assert.NotContains(t, out.String(), "slow frame")
	assert.Contains(t, out.String(), "ERROR: device lost")
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{
		"debug":   LogDebug,
		"INFO":    LogInfo,
		"":        LogInfo,
		"warning": LogWarn,
		" warn ":  LogWarn,
		"Error":   LogError,
	} {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLogLevel("chatty")
	assert.ErrorContains(t, err, "chatty")

	assert.Equal(t, "WARN", LogWarn.String())
	assert.Equal(t, "LogLevel(9)", LogLevel(9).String())
}

func TestLoggingModule(t *testing.T) {
	app, err := NewAppBuilder().UseModule(LoggingModule{Prefix: "labs", Level: LogDebug}).Build()
	require.NoError(t, err)
	assert.Equal(t, LogDebug, app.Logger().Level())

	assert.Greater(t, NewNopLogger().Level(), LogError)
}
