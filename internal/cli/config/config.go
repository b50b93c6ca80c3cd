// Package config loads the optional protogen.yml configuration from the
// working directory.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the protogen configuration
type Config struct {
	Emit EmitConfig `mapstructure:"emit"`
}

// EmitConfig configures the emitted artifact
type EmitConfig struct {
	// Package overrides the Go package name derived from the schema's
	// proto package.
	Package string `mapstructure:"package"`
	// Output is the default output path when the compile command is
	// given none. Empty means standard output.
	Output string `mapstructure:"output"`
	// RequiredFields makes the emitted deserializers treat every
	// non-transient field as mandatory when the caller passes no
	// Parameters.
	RequiredFields bool `mapstructure:"required_fields"`
}

// Load loads the configuration from protogen.yml or protogen.yaml.
// A missing file yields the defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("emit.package", "")
	v.SetDefault("emit.output", "")
	v.SetDefault("emit.required_fields", false)

	v.SetConfigName("protogen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("protogen")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}
