package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/shamanec/umdb/models"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported configuration file format")

type format int

const (
	formatJSON format = iota
	formatYAML
	formatTOML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	}
	return 0, fmt.Errorf("%w: `%s`", ErrUnsupportedFormat, path)
}

// Load reads the configuration file at path, the format follows the extension
func Load(path string) (models.Configuration, error) {
	var configuration models.Configuration

	fileFormat, err := formatOf(path)
	if err != nil {
		return configuration, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return configuration, fmt.Errorf("read config: %w", err)
	}

	switch fileFormat {
	case formatJSON:
		err = json.Unmarshal(data, &configuration)
	case formatYAML:
		err = yaml.Unmarshal(data, &configuration)
	case formatTOML:
		err = toml.Unmarshal(data, &configuration)
	}
	if err != nil {
		return models.Configuration{}, fmt.Errorf("parse config: %w", err)
	}

	configuration.AdbCommand = strings.TrimSpace(configuration.AdbCommand)
	return configuration, nil
}

// Save writes the configuration to path in the format of its extension
func Save(path string, configuration models.Configuration) error {
	fileFormat, err := formatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch fileFormat {
	case formatJSON:
		data, err = json.MarshalIndent(configuration, "", "  ")
	case formatYAML:
		data, err = yaml.Marshal(configuration)
	case formatTOML:
		data, err = toml.Marshal(configuration)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
