package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineLogLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, determineLogLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, determineLogLevel("WARN"))
	assert.Equal(t, logrus.WarnLevel, determineLogLevel("WARNING"))
	assert.Equal(t, logrus.ErrorLevel, determineLogLevel("ERROR"))
	assert.Equal(t, logrus.FatalLevel, determineLogLevel("FATAL"))
	assert.Equal(t, logrus.InfoLevel, determineLogLevel(""))
	assert.Equal(t, logrus.InfoLevel, determineLogLevel("bogus"))
}

func TestConfigureReplacesDefaultLogger(t *testing.T) {
	original := Default()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLogger = original
		defaultMu.Unlock()
	})

	require.NoError(t, Configure("ERROR", "json"))

	configured, ok := Default().(*LogrusLogger)
	require.True(t, ok)
	assert.NotSame(t, original, Default())
	assert.Equal(t, logrus.ErrorLevel, configured.Logger.GetLevel())
	assert.IsType(t, &JSONFormatter{}, configured.Logger.Formatter)
}
