package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempHome(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
}

func TestInitializeIfNotWritesDefaults(t *testing.T) {
	withTempHome(t)

	InitializeIfNot()

	_, err := os.Stat(Path())
	require.NoError(t, err)

	got := Read()
	assert.Equal(t, defaults(), *got)
}

func TestInitializeIfNotDoesNotOverwriteExisting(t *testing.T) {
	withTempHome(t)

	InitializeIfNot()
	custom := Read()
	custom.DefaultHint = "Y1|T|r"
	Write(custom)

	InitializeIfNot()

	got := Read()
	assert.Equal(t, "Y1|T|r", got.DefaultHint)
}

func TestWriteReadRoundTrip(t *testing.T) {
	withTempHome(t)

	require.NoError(t, os.MkdirAll(configDir(), 0700))
	conf := &Config{
		ScreenWidth: 800, ScreenHeight: 600, DefaultHint: "Y2|D|R",
		DevicePath: "/dev/null", SysfsRoot: "/sys/class/graphics/fb0", SocketPath: "/tmp/s.sock",
	}
	Write(conf)

	got := Read()
	assert.Equal(t, *conf, *got)
}
