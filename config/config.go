// Package config loads editor tuning from an optional TOML file.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable constant of the editor.
type Config struct {
	Interaction Interaction `toml:"interaction"`
	Style       Style       `toml:"style"`
	Toolbar     Toolbar     `toml:"toolbar"`
	Export      Export      `toml:"export"`
}

// Interaction constrains resizing.
type Interaction struct {
	MinWidth  float64 `toml:"min_width"`
	MinHeight float64 `toml:"min_height"`
}

// Style controls font-size stepping and the bold toggle.
type Style struct {
	MinFontSize   float64 `toml:"min_font_size"`
	FontStep      float64 `toml:"font_step"`
	BoldThreshold int     `toml:"bold_threshold"`
	NormalWeight  int     `toml:"normal_weight"`
	BoldWeight    int     `toml:"bold_weight"`
}

// Toolbar describes the floating panel's size and placement rules (viewport px).
type Toolbar struct {
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	ButtonWidth float64 `toml:"button_width"`
	GapAbove    float64 `toml:"gap_above"`
	GapBelow    float64 `toml:"gap_below"`
	MinTop      float64 `toml:"min_top"`
	EdgeMargin  float64 `toml:"edge_margin"`
}

// Export configures the clean capture.
type Export struct {
	Filename    string   `toml:"filename"`
	Width       int      `toml:"width"`
	Height      int      `toml:"height"`
	Scale       float64  `toml:"scale"`
	SettleDelay Duration `toml:"settle_delay"`
	CrossOrigin bool     `toml:"cross_origin"`
	AllowTaint  bool     `toml:"allow_taint"`
	Logging     bool     `toml:"logging"`
}

// Duration decodes TOML strings such as "250ms".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Interaction: Interaction{MinWidth: 80, MinHeight: 30},
		Style: Style{
			MinFontSize:   8,
			FontStep:      2,
			BoldThreshold: 700,
			NormalWeight:  400,
			BoldWeight:    900,
		},
		Toolbar: Toolbar{
			Width:       260,
			Height:      40,
			ButtonWidth: 40,
			GapAbove:    12,
			GapBelow:    10,
			MinTop:      60,
			EdgeMargin:  12,
		},
		Export: Export{
			Filename:    "BYTEZY_Menu_Roster.png",
			Width:       2000,
			Height:      1414,
			Scale:       1,
			SettleDelay: Duration{250 * time.Millisecond},
			CrossOrigin: true,
			AllowTaint:  true,
		},
	}
}

// Load reads path on top of Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML text on top of Default.
func Decode(text string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the editor cannot honour.
func (c Config) Validate() error {
	switch {
	case c.Interaction.MinWidth <= 0 || c.Interaction.MinHeight <= 0:
		return fmt.Errorf("interaction minimums must be positive")
	case c.Style.MinFontSize <= 0:
		return fmt.Errorf("style.min_font_size must be positive")
	case c.Toolbar.Width <= 0 || c.Toolbar.Height <= 0:
		return fmt.Errorf("toolbar size must be positive")
	case c.Toolbar.ButtonWidth*4 > c.Toolbar.Width:
		return fmt.Errorf("toolbar is too narrow for its buttons")
	case c.Export.Width <= 0 || c.Export.Height <= 0 || c.Export.Scale <= 0:
		return fmt.Errorf("export size and scale must be positive")
	case c.Export.Filename == "":
		return fmt.Errorf("export.filename is required")
	}
	return nil
}
