package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/remarklens/remarklens/pkg/shared/files"
)

// DefaultConfigPath is resolved against the user's home directory when no
// explicit --config flag is given.
const DefaultConfigPath = "~/.remarklens/config.yml"

// ValidateConfigPath checks that the given path points at a readable file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig loads the configuration from the given path. An empty path
// selects DefaultConfigPath, and a missing default file yields the built-in
// defaults. An explicit path that cannot be read is an error.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	expanded, err := files.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path %q: %w", path, err)
	}

	config := &Config{}
	if err := LoadYAML(expanded, config); err != nil {
		if !explicit && os.IsNotExist(err) {
			return applyDefaults(config), nil
		}
		return nil, fmt.Errorf("failed to load config %q: %w", expanded, err)
	}
	return applyDefaults(config), nil
}

func applyDefaults(cfg *Config) *Config {
	cfg.Output.Color = SetThen(cfg.Output.Color, ColorAuto)
	return cfg
}
