package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/substantialcattle5/cleanfiles/internal/constants"
	"github.com/substantialcattle5/cleanfiles/internal/filelock"
)

// DefaultPath returns the configuration path in the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, constants.DefaultConfigFileName), nil
}

// Load reads the configuration at path. A missing file is initialized with
// the defaults, which are then returned.
func Load(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("Initializing new config in '%s'...\n", path)
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return Config{}, err
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("error accessing configuration: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}

	def := Default()
	v.SetDefault("temp_file_suffixes", def.TempFileSuffixes)
	v.SetDefault("bad_permission_modes", def.BadPermissionModes)
	v.SetDefault("bad_permission_replacement", def.BadPermissionReplacement)
	v.SetDefault("bad_characters", def.BadCharacters)
	v.SetDefault("bad_character_replacement", def.BadCharacterReplacement)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("error reading configuration %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing configuration %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg to path as YAML, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := filelock.AtomicWrite(path, data, constants.StandardFilePerms); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}
