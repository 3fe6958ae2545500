package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, PlatformUnix, cfg.Platform)
	assert.Equal(t, "gnuplot", cfg.Command)
	assert.Equal(t, TransportPipe, cfg.Transport)
	assert.Equal(t, "x11", cfg.DefaultTerminal)
	assert.True(t, cfg.RecognizesBinarySplot)
	assert.False(t, cfg.PreferInlineData)
	assert.NoError(t, cfg.Validate())
}

func TestForPlatform(t *testing.T) {
	win, err := ForPlatform(PlatformWindows)
	require.NoError(t, err)
	assert.Equal(t, "pgnuplot.exe", win.Command)
	assert.Equal(t, "PRN", win.DefaultPrinter)
	assert.True(t, win.PreferInlineData)

	mac, err := ForPlatform(PlatformMacOSX)
	require.NoError(t, err)
	assert.Equal(t, "aqua", mac.DefaultTerminal)

	_, err = ForPlatform("beos")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseOverlaysPreset(t *testing.T) {
	cfg, err := Parse([]byte(`
platform: macosx
command: /opt/gnuplot/bin/gnuplot -d
prefer_inline_data: true
debug: true
`))
	require.NoError(t, err)

	assert.Equal(t, "aqua", cfg.DefaultTerminal)
	assert.Equal(t, "/opt/gnuplot/bin/gnuplot -d", cfg.Command)
	assert.True(t, cfg.PreferInlineData)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.PreferEnhancedPostscript, "unset fields keep the preset")
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":          "platform: [",
		"unknown platform":  "platform: amiga",
		"unknown transport": "transport: carrier-pigeon",
		"file without log":  "transport: file",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gnuplot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport: file\ncommand_log: out.gp\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, TransportFile, cfg.Transport)
	assert.Equal(t, "out.gp", cfg.CommandLog)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
