package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	require.NoError(t, configure(l, Config{Level: "warn", Format: "json", Output: &buf}))

	l.Info("hidden")
	l.WithField("sheet", "Data").Warn("shown")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "Data", entry["sheet"])
	assert.Equal(t, "warning", entry["level"])
}

func TestConfigureDefaults(t *testing.T) {
	l := logrus.New()
	require.NoError(t, configure(l, Config{}))
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestConfigureInvalid(t *testing.T) {
	assert.Error(t, configure(logrus.New(), Config{Level: "loud"}))
	assert.Error(t, configure(logrus.New(), Config{Format: "xml"}))
}

func TestSetupOnce(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, Setup(Config{Level: "debug", Output: &first}))
	require.NoError(t, Setup(Config{Level: "loud", Output: &second}))

	logrus.Debug("once")
	assert.Contains(t, first.String(), "once")
	assert.Empty(t, second.String())
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}
