package render

import (
	"errors"

	"github.com/fatih/color"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// ErrInvalidConfig is returned for configurations with a negative width.
var ErrInvalidConfig = errors.New("render: invalid configuration")

// Config represents a set of configuration parameters for rendering.
type Config struct {
	Width   int            // maximum line width in cells, 0 for unlimited
	Color   bool           // color labels by depth
	Context *uax11.Context // context for measuring display widths
	Palette []*color.Color // colors per depth, cycled; nil for the default palette
}

func (c Config) normalized() Config {
	if c.Context == nil {
		c.Context = uax11.LatinContext
	}
	if len(c.Palette) == 0 {
		c.Palette = defaultPalette()
	}
	return c
}

func (c Config) validate() error {
	if c.Width < 0 {
		return ErrInvalidConfig
	}
	return nil
}

func defaultPalette() []*color.Color {
	return []*color.Color{
		color.New(color.FgBlue),
		color.New(color.FgGreen),
		color.New(color.FgYellow),
		color.New(color.FgMagenta),
		color.New(color.FgCyan),
	}
}

// ConfigFromTerminal is a simple helper for creating a rendering Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and turns on colors. The measuring context is derived from the user
// environment.
func ConfigFromTerminal() *Config {
	config := &Config{Context: uax11.ContextFromEnvironment()}
	if term.IsTerminal(1) {
		config.Color = true
		if w, _, err := term.GetSize(1); err == nil && w > 10 {
			config.Width = w - 1
		} else {
			config.Width = 80
		}
	}
	T().P("render", "terminal").Infof("setting line width to %d", config.Width)
	return config
}
