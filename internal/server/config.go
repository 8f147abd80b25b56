// Package server implements the Wayfinder HTTP service.
//
// This file defines the YAML configuration of the service and how the layout
// registry is assembled from it.
package server

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sanonone/wayfinder/pkg/engine"
	"github.com/sanonone/wayfinder/pkg/layout"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the top-level service configuration.
type Config struct {
	HTTPAddr  string  `yaml:"http_addr" validate:"required"`
	AuthToken string  `yaml:"auth_token"`
	Threshold float64 `yaml:"threshold" validate:"gte=0"`
	LogLevel  string  `yaml:"log_level" validate:"oneof=debug info warn error"`
	// MaxBatch caps the number of routes in one POST /routes call.
	MaxBatch int            `yaml:"max_batch" validate:"gte=1,lte=1024"`
	Layouts  []LayoutSource `yaml:"layouts" validate:"dive"`
	Campus   CampusConfig   `yaml:"campus"`
}

// LayoutSource points at a layout file. Name defaults to the file name
// without its extension.
type LayoutSource struct {
	Name string `yaml:"name"`
	Path string `yaml:"path" validate:"required"`
}

// CampusConfig enables the generated demo campus.
type CampusConfig struct {
	Enabled       bool     `yaml:"enabled"`
	Name          string   `yaml:"name" validate:"required_if=Enabled true"`
	Buildings     []string `yaml:"buildings"`
	Floors        int      `yaml:"floors" validate:"gte=0"`
	RoomsPerFloor int      `yaml:"rooms_per_floor" validate:"gte=0,lte=99"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:  ":9191",
		Threshold: engine.DefaultThreshold,
		LogLevel:  "info",
		MaxBatch:  64,
		Campus: CampusConfig{
			Name:          "campus",
			Buildings:     []string{"AB1", "AB2"},
			Floors:        4,
			RoomsPerFloor: 40,
		},
	}
}

// LoadConfig reads the YAML configuration over DefaultConfig.
// It uses strict mode (KnownFields) to catch typos and expands environment
// variables before parsing.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read configuration file '%s': %w", path, err)
	}

	decoder := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("YAML syntax error in '%s': %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Spec converts the campus settings into a generator spec. Buildings after the
// first are shifted 40 units to the right of the previous one.
func (c CampusConfig) Spec() layout.CampusSpec {
	spec := layout.CampusSpec{RoomsPerFloor: c.RoomsPerFloor, Junctions: true}
	for i, b := range c.Buildings {
		spec.Buildings = append(spec.Buildings, layout.BuildingOffset{Building: b, OffsetX: float64(40 * i)})
	}
	for f := 0; f < c.Floors; f++ {
		spec.Floors = append(spec.Floors, f)
	}
	return spec
}

// BuildRegistry loads every configured layout. Extra layouts, such as one
// given on the command line, are registered after the configured ones.
func (c Config) BuildRegistry(extra ...LayoutSource) (*layout.Registry, error) {
	reg, err := layout.NewRegistry()
	if err != nil {
		return nil, err
	}

	if c.Campus.Enabled {
		l, err := layout.New(c.Campus.Name, "generated campus", layout.GenerateCampus(c.Campus.Spec()))
		if err != nil {
			return nil, err
		}
		if err := reg.Add(l); err != nil {
			return nil, err
		}
	}

	for _, src := range append(append([]LayoutSource{}, c.Layouts...), extra...) {
		name := src.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(src.Path), filepath.Ext(src.Path))
		}
		l, err := layout.Load(src.Path, name)
		if err != nil {
			return nil, err
		}
		if src.Name != "" {
			l.Name = src.Name
		}
		if err := reg.Add(l); err != nil {
			return nil, err
		}
		slog.Info("Layout loaded", "name", l.Name, "nodes", len(l.Nodes), "path", src.Path)
	}
	return reg, nil
}
