// Package config handles groundtool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/groundmesh/pkg/grid"
)

// FileName is the config file looked up in the working and config directories.
const FileName = "groundtool.yaml"

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all groundtool settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Brush   BrushConfig   `yaml:"brush"`
	History HistoryConfig `yaml:"history"`
	Tileset TilesetConfig `yaml:"tileset"`
	Noise   NoiseConfig   `yaml:"noise"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds the dimensions of a new mesh.
type MeshConfig struct {
	Cols         int `yaml:"cols"`
	Rows         int `yaml:"rows"`
	AtlasColumns int `yaml:"atlas_columns"` // Ignored when a tileset is set
}

// BrushConfig holds brush limits and the initial brush size.
type BrushConfig struct {
	Size       int     `yaml:"size"`
	MaxSize    int     `yaml:"max_size"`
	HeightUnit float32 `yaml:"height_unit"`
}

// HistoryConfig holds undo settings.
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// TilesetConfig points at a tileset descriptor.
type TilesetConfig struct {
	Path string `yaml:"path"` // Empty for plain UV mode
}

// NoiseConfig holds procedural height seeding settings.
type NoiseConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Seed      int64   `yaml:"seed"`
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Octaves   int32   `yaml:"octaves"`
	Scale     float64 `yaml:"scale"`
	Amplitude float32 `yaml:"amplitude"`
	Step      float32 `yaml:"step"`
}

// Params converts the settings for grid.SeedHeights.
func (n NoiseConfig) Params() grid.NoiseParams {
	return grid.NoiseParams{
		Seed:      n.Seed,
		Alpha:     n.Alpha,
		Beta:      n.Beta,
		Octaves:   n.Octaves,
		Scale:     n.Scale,
		Amplitude: n.Amplitude,
		Step:      n.Step,
	}
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	noise := grid.DefaultNoiseParams()
	return &Config{
		Mesh: MeshConfig{
			Cols:         10,
			Rows:         10,
			AtlasColumns: 1,
		},
		Brush: BrushConfig{
			Size:       1,
			MaxSize:    20,
			HeightUnit: 0.5,
		},
		History: HistoryConfig{
			Limit: 50,
		},
		Noise: NoiseConfig{
			Enabled:   false,
			Seed:      noise.Seed,
			Alpha:     noise.Alpha,
			Beta:      noise.Beta,
			Octaves:   noise.Octaves,
			Scale:     noise.Scale,
			Amplitude: noise.Amplitude,
			Step:      0.5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings the editor cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Mesh.Cols < 1 || c.Mesh.Rows < 1:
		return fmt.Errorf("%w: mesh must be at least 1x1, got %dx%d", ErrInvalid, c.Mesh.Cols, c.Mesh.Rows)
	case c.Mesh.AtlasColumns < 1:
		return fmt.Errorf("%w: atlas_columns must be positive, got %d", ErrInvalid, c.Mesh.AtlasColumns)
	case c.Brush.MaxSize < 1:
		return fmt.Errorf("%w: brush max_size must be positive, got %d", ErrInvalid, c.Brush.MaxSize)
	case c.Brush.HeightUnit <= 0:
		return fmt.Errorf("%w: brush height_unit must be positive, got %v", ErrInvalid, c.Brush.HeightUnit)
	case c.History.Limit < 1:
		return fmt.Errorf("%w: history limit must be positive, got %d", ErrInvalid, c.History.Limit)
	}
	return nil
}
