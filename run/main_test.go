package run

import (
	"testing"

	"github.com/ridge/gate/tlog"
	"github.com/stretchr/testify/require"
)

func TestLogConfigDefaults(t *testing.T) {
	config, err := newLogFlags("test").config(nil)
	require.NoError(t, err)
	require.Equal(t, tlog.Config{Format: tlog.FormatText, Color: tlog.ColorAuto}, config)
}

func TestLogConfig(t *testing.T) {
	config, err := newLogFlags("test").config([]string{"--addr", "tcp::80", "--log-format", "json", "--log-color=no", "-v"})
	require.NoError(t, err)
	require.Equal(t, tlog.Config{Format: tlog.FormatJSON, Color: tlog.ColorNo, Verbose: true}, config)
}

func TestLogConfigInvalid(t *testing.T) {
	_, err := newLogFlags("test").config([]string{"--log-format", "xml"})
	require.EqualError(t, err, `invalid --log-format value "xml"`)

	_, err = newLogFlags("test").config([]string{"--log-color", "maybe"})
	require.EqualError(t, err, `invalid --log-color value "maybe"`)
}
