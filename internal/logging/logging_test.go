package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rwsl-simulator/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Lvl
	}{
		{"debug", log.DEBUG},
		{"INFO", log.INFO},
		{"", log.INFO},
		{"Warn", log.WARN},
		{"error", log.ERROR},
		{"off", log.OFF},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestWriterConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	w, c, err := Writer(config.LogConfig{}, &console)
	require.NoError(t, err)
	defer c.Close()

	fmt.Fprint(w, "SPAWN: AC0001")
	assert.Equal(t, "SPAWN: AC0001", console.String())
}

func TestWriterTeesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rwsl.log")
	var console bytes.Buffer

	w, c, err := Writer(config.LogConfig{File: path, MaxSizeMB: 1}, &console)
	require.NoError(t, err)

	fmt.Fprintln(w, "CONFLICT: AC0001 HS2")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "CONFLICT: AC0001 HS2\n", string(data))
	assert.Equal(t, "CONFLICT: AC0001 HS2\n", console.String())
}

func TestSetupRejectsBadLevel(t *testing.T) {
	_, err := Setup(config.LogConfig{Level: "LOUD"})
	assert.Error(t, err)
}
