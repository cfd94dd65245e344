package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ConfigPaths defines the search locations for config files.
const (
	// GlobalConfigDir is the XDG config directory name
	GlobalConfigDir = "refgraph"
	// GlobalConfigFile is the global config file name
	GlobalConfigFile = "config.yaml"
	// ProjectConfigDir is the project-local config directory
	ProjectConfigDir = ".refgraph"
	// ProjectConfigFile is the project-local config file name
	ProjectConfigFile = "config.yaml"
)

// EnvPrefix prefixes every environment override (REFGRAPH_CATALOG_PATH).
const EnvPrefix = "REFGRAPH"

// BindEnv makes v read REFGRAPH_* variables. Section separators and
// hyphens both map to underscores, so viewport.max_scale is read from
// REFGRAPH_VIEWPORT_MAX_SCALE.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// LoadConfig loads configuration from files and viper settings.
// Precedence (later overrides earlier):
//  1. Default() values
//  2. ~/.config/refgraph/config.yaml (global)
//  3. .refgraph/config.yaml (project)
//  4. --config file
//  5. Environment variables (REFGRAPH_*)
//  6. CLI flags (applied by the caller when explicitly set)
//
// Missing config files are silently ignored.
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := Default()

	defaultMap, err := structToMap(cfg)
	if err != nil {
		return nil, err
	}
	if err := v.MergeConfigMap(defaultMap); err != nil {
		return nil, err
	}

	if globalPath := globalConfigPath(); globalPath != "" {
		if err := loadConfigFile(v, globalPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", globalPath, err)
		}
	}

	if projectPath := projectConfigPath(); projectPath != "" {
		if err := loadConfigFile(v, projectPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", projectPath, err)
		}
	}

	// Explicit config file (from --config flag or REFGRAPH_CONFIG env)
	if explicitPath := v.GetString("config"); explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, err
		}
		if err := loadConfigFile(v, explicitPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicitPath, err)
		}
	}

	if err := v.Unmarshal(cfg, viperDecodeHook()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports settings that would make the viewer misbehave.
func (c *Config) Validate() error {
	switch {
	case c.Viewport.MinScale <= 0:
		return fmt.Errorf("%w: viewport.min_scale must be positive", ErrInvalidConfig)
	case c.Viewport.MaxScale < c.Viewport.MinScale:
		return fmt.Errorf("%w: viewport.max_scale %.2f below min_scale %.2f",
			ErrInvalidConfig, c.Viewport.MaxScale, c.Viewport.MinScale)
	case c.Layout.CollideStrength < 0 || c.Layout.CollideStrength > 1:
		return fmt.Errorf("%w: layout.collide_strength must be within [0, 1]", ErrInvalidConfig)
	case c.Layout.VelocityDecay < 0 || c.Layout.VelocityDecay > 1:
		return fmt.Errorf("%w: layout.velocity_decay must be within [0, 1]", ErrInvalidConfig)
	case c.Layout.LinkDistance <= 0:
		return fmt.Errorf("%w: layout.link_distance must be positive", ErrInvalidConfig)
	case c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0:
		return fmt.Errorf("%w: render cell size must be positive", ErrInvalidConfig)
	case c.Render.FrameInterval <= 0:
		return fmt.Errorf("%w: render.frame_interval must be positive", ErrInvalidConfig)
	case c.Render.MaxRadius < c.Render.MinRadius:
		return fmt.Errorf("%w: render.max_radius below min_radius", ErrInvalidConfig)
	case c.Export.Width <= 0 || c.Export.Height <= 0:
		return fmt.Errorf("%w: export size must be positive", ErrInvalidConfig)
	case c.Export.SettleTicks < 0:
		return fmt.Errorf("%w: export.settle_ticks must not be negative", ErrInvalidConfig)
	}
	return nil
}

// globalConfigPath returns the global config file path if it exists.
func globalConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}

	path := filepath.Join(configDir, GlobalConfigDir, GlobalConfigFile)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// projectConfigPath returns the project config file path if it exists.
func projectConfigPath() string {
	path := filepath.Join(ProjectConfigDir, ProjectConfigFile)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// loadConfigFile loads a YAML config file and merges it into viper.
// Returns nil if the file doesn't exist.
func loadConfigFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	fileViper := viper.New()
	fileViper.SetConfigType("yaml")
	if err := fileViper.ReadConfig(file); err != nil {
		return err
	}

	return v.MergeConfigMap(fileViper.AllSettings())
}

// viperDecodeHook returns the decoder config with duration hook.
func viperDecodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// structToMap converts a struct to a map for viper.MergeConfigMap.
func structToMap(cfg *Config) (map[string]interface{}, error) {
	result := make(map[string]interface{})

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "mapstructure",
		Result:  &result,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			durationToStringHook(),
		),
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}

	return result, nil
}

// durationToStringHook converts time.Duration to string for YAML compatibility.
func durationToStringHook() mapstructure.DecodeHookFunc {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if from != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		return data.(time.Duration).String(), nil
	}
}
