package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader loads configuration files.
type Loader struct {
	// ExpandEnv enables environment variable expansion.
	ExpandEnv bool
	// Validate enables configuration validation.
	Validate bool
}

func NewLoader() *Loader {
	return &Loader{ExpandEnv: true, Validate: true}
}

// LoadFile loads a YAML file. Values absent from the file keep their
// defaults.
func (l *Loader) LoadFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to access config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidFormat, path)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	return l.Load(f)
}

// Load reads YAML from r over the defaults.
func (l *Loader) Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	content := string(data)
	if l.ExpandEnv {
		if content, err = expandEnv(content); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if l.Validate {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// LoadString loads configuration from a string.
func (l *Loader) LoadString(content string) (*Config, error) {
	return l.Load(strings.NewReader(content))
}
