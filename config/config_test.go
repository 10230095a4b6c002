package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 80.0, cfg.Interaction.MinWidth)
	assert.Equal(t, 30.0, cfg.Interaction.MinHeight)
	assert.Equal(t, 8.0, cfg.Style.MinFontSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Export.SettleDelay.Duration)
	assert.Equal(t, "BYTEZY_Menu_Roster.png", cfg.Export.Filename)
}

func TestDecodeOverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := Decode(`
[interaction]
min_width = 120

[export]
settle_delay = "10ms"
filename = "menu.png"
`)
	require.NoError(t, err)
	assert.Equal(t, 120.0, cfg.Interaction.MinWidth)
	assert.Equal(t, 30.0, cfg.Interaction.MinHeight)
	assert.Equal(t, 10*time.Millisecond, cfg.Export.SettleDelay.Duration)
	assert.Equal(t, "menu.png", cfg.Export.Filename)
	assert.Equal(t, 2000, cfg.Export.Width)
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "editor.toml")
	require.NoError(t, os.WriteFile(path, []byte("[style]\nmin_font_size = 0\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDecodeRejectsBadDuration(t *testing.T) {
	_, err := Decode("[export]\nsettle_delay = \"soon\"\n")
	assert.Error(t, err)
}
