// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Color is an RGBA color with 0-255 channels, encoded as a four element list.
type Color [4]uint8

// Config represents the root configuration file structure.
type Config struct {
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Caption     string  `yaml:"caption,omitempty" json:"caption,omitempty"`
	MapStyle    string  `yaml:"map_style,omitempty" json:"map_style,omitempty"`
	Groups      []Group `yaml:"groups" json:"groups"`
	Zoom        float64 `yaml:"zoom,omitempty" json:"zoom"`
	Fallback    View    `yaml:"fallback" json:"fallback"`
}

// Group describes one of the two compared point groups and its boundary document.
type Group struct {
	// defining GeoJSON directly in config.yaml
	Inline map[string]interface{} `yaml:"geojson,omitempty" json:"-"`

	Name  string `yaml:"name" json:"name"`
	Path  string `yaml:"path,omitempty" json:"path,omitempty"`
	Fill  Color  `yaml:"fill" json:"fill"`
	Line  Color  `yaml:"line" json:"line"`
	Point Color  `yaml:"point" json:"point"`
}

// View is an initial map view.
type View struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
	Zoom      float64 `yaml:"zoom" json:"zoom"`
}

const (
	// DefaultZoom is the initial zoom when at least one point exists.
	DefaultZoom = 10.2

	// DefaultMapStyle is the base map style name.
	DefaultMapStyle = "road"

	maxZoom = 24
)

// Default returns the built-in configuration: Gresik (blue) against Lamongan (red).
func Default() *Config {
	baseDir := "Map"

	return &Config{
		Title: "Comparison Map of Two Coordinate Point Groups",
		Description: "Compare two point groups (for example an old and a new survey, " +
			"or two kinds of data) with region boundaries from two different GeoJSON files.",
		Caption:  "Note: blue = Group A, red = Group B",
		MapStyle: DefaultMapStyle,
		Zoom:     DefaultZoom,
		Fallback: View{Latitude: -7.15, Longitude: 112.65, Zoom: 9.5},
		Groups: []Group{
			{
				Name:  "Group A",
				Path:  filepath.Join(baseDir, "Kabupaten_Gresik.geojson"),
				Fill:  Color{59, 130, 246, 60},
				Line:  Color{30, 80, 200, 220},
				Point: Color{59, 130, 246, 240},
			},
			{
				Name:  "Group B",
				Path:  filepath.Join(baseDir, "Kabupaten_Lamongan.geojson"),
				Fill:  Color{239, 68, 68, 60},
				Line:  Color{180, 40, 40, 220},
				Point: Color{239, 68, 68, 240},
			},
		},
	}
}

// Load reads the YAML configuration file from path on top of the defaults.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillGroupColors(Default().Groups)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	return cfg, nil
}

// fillGroupColors takes unset group colors from defaults at the same position.
// A groups list in YAML replaces the default one entirely, colors included.
func (c *Config) fillGroupColors(defaults []Group) {
	for i := range c.Groups {
		if i >= len(defaults) {
			return
		}
		g := &c.Groups[i]
		if g.Fill == (Color{}) {
			g.Fill = defaults[i].Fill
		}
		if g.Line == (Color{}) {
			g.Line = defaults[i].Line
		}
		if g.Point == (Color{}) {
			g.Point = defaults[i].Point
		}
	}
}

// Validate checks the invariants the pipeline relies on.
func (c *Config) Validate() error {
	if len(c.Groups) != 2 {
		return fmt.Errorf("exactly 2 groups required, got %d", len(c.Groups))
	}

	for i, g := range c.Groups {
		if g.Name == "" {
			return fmt.Errorf("group %d: name is empty", i+1)
		}
		if g.Path == "" && g.Inline == nil {
			return fmt.Errorf("group %q: neither path nor geojson set", g.Name)
		}
	}

	if c.Zoom < 0 || c.Zoom > maxZoom {
		return fmt.Errorf("zoom %v out of range [0, %d]", c.Zoom, maxZoom)
	}
	if c.Fallback.Zoom < 0 || c.Fallback.Zoom > maxZoom {
		return fmt.Errorf("fallback zoom %v out of range [0, %d]", c.Fallback.Zoom, maxZoom)
	}

	if c.MapStyle == "" {
		return errors.New("map_style is empty")
	}

	return nil
}
