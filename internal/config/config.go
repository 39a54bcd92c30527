// Package config loads meterstat settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all meterstat configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Columns    ColumnMarkers    `toml:"columns"`
	Energy     EnergyConfig     `toml:"energy"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	NoDelete  bool   `toml:"no_delete"`
	OutputDir string `toml:"output_dir,omitempty"`
	WriteXLSX bool   `toml:"write_xlsx"`
}

// ColumnMarkers are the header names and substrings used to recognize the
// columns of a meter export.
type ColumnMarkers struct {
	Start        string `toml:"start"`
	End          string `toml:"end"`
	Consumption  string `toml:"consumption"`
	ElectricUnit string `toml:"electric_unit"`
}

// EnergyConfig holds unit conversion settings.
type EnergyConfig struct {
	CalorificFactor float64 `toml:"calorific_factor"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultMarkers matches the column names of an Octopus Energy export.
func DefaultMarkers() ColumnMarkers {
	return ColumnMarkers{
		Start:        "Start",
		End:          "End",
		Consumption:  "Consumption",
		ElectricUnit: "kWh",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Columns: DefaultMarkers(),
		Energy: EnergyConfig{
			CalorificFactor: DefaultCalorificFactor,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "meterstat")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "meterstat")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads a specific config file. Keys missing from the file keep
// their default values.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot work with.
func (c Config) Validate() error {
	if c.Columns.Start == "" || c.Columns.End == "" || c.Columns.Consumption == "" {
		return fmt.Errorf("config: column markers must not be empty")
	}
	if c.Energy.CalorificFactor <= 0 {
		return fmt.Errorf("config: calorific_factor must be positive, got %v", c.Energy.CalorificFactor)
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config to path, creating its directory.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
