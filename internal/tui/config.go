package tui

import "github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"

// Config holds TUI configuration.
type Config struct {
	Theme  Theme
	Locale model.Locale
	Width  int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:  Default,
		Locale: model.DefaultLocale,
		Width:  80,
	}
}

// WithTheme sets the color theme.
func WithTheme(theme Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithLocale sets the initial locale.
func WithLocale(loc model.Locale) Option {
	return func(c *Config) {
		c.Locale = model.ParseLocale(string(loc))
	}
}

// WithWidth sets the initial width until the terminal reports its size.
func WithWidth(width int) Option {
	return func(c *Config) {
		if width > 0 {
			c.Width = width
		}
	}
}
