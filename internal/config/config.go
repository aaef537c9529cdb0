// Package config loads pad options from a TOML file. Out-of-range values
// are clamped, never rejected; a missing file means defaults.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds every recognized option with its documented default.
type Config struct {
	SurfaceWidth       int     `toml:"surface_width"`
	SurfaceHeight      int     `toml:"surface_height"`
	DefaultStrokeWidth float64 `toml:"default_stroke_width"`
	DefaultStrokeColor string  `toml:"default_stroke_color"`
	BackgroundColor    string  `toml:"background_color"`
	MinStrokeWidth     float64 `toml:"min_stroke_width"`
	MaxStrokeWidth     float64 `toml:"max_stroke_width"`
	MinQualityScore    int     `toml:"min_quality_score"`
	HistoryDepth       int     `toml:"history_depth"`
}

// Surface dimension limits applied during clamping.
const (
	minSurfaceDim = 50
	maxSurfaceDim = 4096
)

// Default returns the documented defaults.
func Default() Config {
	return Config{
		SurfaceWidth:       600,
		SurfaceHeight:      300,
		DefaultStrokeWidth: 2.5,
		DefaultStrokeColor: "#000000",
		BackgroundColor:    "#ffffff",
		MinStrokeWidth:     0.5,
		MaxStrokeWidth:     20,
		MinQualityScore:    20,
		HistoryDepth:       50,
	}
}

// Load reads the config file at path. A missing file is initialized with
// the defaults so users have something to edit. Loaded values are clamped
// into their valid ranges.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("[config] %s not found, initializing with defaults", path)
		if err := writeDefault(path, cfg); err != nil {
			log.Printf("[config] could not initialize %s: %v", path, err)
		}
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.clamp()
	return cfg, nil
}

func writeDefault(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c *Config) clamp() {
	c.SurfaceWidth = clampInt(c.SurfaceWidth, minSurfaceDim, maxSurfaceDim)
	c.SurfaceHeight = clampInt(c.SurfaceHeight, minSurfaceDim, maxSurfaceDim)
	if c.MinStrokeWidth <= 0 {
		c.MinStrokeWidth = Default().MinStrokeWidth
	}
	if c.MaxStrokeWidth < c.MinStrokeWidth {
		c.MaxStrokeWidth = c.MinStrokeWidth
	}
	if c.DefaultStrokeWidth < c.MinStrokeWidth {
		c.DefaultStrokeWidth = c.MinStrokeWidth
	}
	if c.DefaultStrokeWidth > c.MaxStrokeWidth {
		c.DefaultStrokeWidth = c.MaxStrokeWidth
	}
	if c.DefaultStrokeColor == "" {
		c.DefaultStrokeColor = Default().DefaultStrokeColor
	}
	if c.BackgroundColor == "" {
		c.BackgroundColor = Default().BackgroundColor
	}
	if c.MinQualityScore < 0 {
		c.MinQualityScore = 0
	}
	if c.MinQualityScore > 100 {
		c.MinQualityScore = 100
	}
	if c.HistoryDepth <= 0 {
		c.HistoryDepth = Default().HistoryDepth
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
