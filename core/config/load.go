package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load reads and validates the configuration under configDir.
func Load(fs afero.Fs, configDir string) (*Config, error) {
	configPath := filepath.Join(configDir, ConfigurationName)

	contents, err := afero.ReadFile(fs, configPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't read config %q: %w", configPath, err)
	}

	out := defaultConfig()
	if err := yaml.UnmarshalStrict(contents, out); err != nil {
		return nil, fmt.Errorf("couldn't parse config %q: %w", configPath, err)
	}
	out.configDir = configDir

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", configPath, err)
	}

	return out, nil
}

// HostKeyPEM reads the SSH host key referenced by the configuration.
func (c *Config) HostKeyPEM(fs afero.Fs) ([]byte, error) {
	path := c.SSH.HostKeyPath
	if path == "" {
		path = HostKeyName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.configDir, path)
	}

	return afero.ReadFile(fs, path)
}

// HistoryPath resolves the history file location, or "" when
// persistence is disabled.
func (c *Config) HistoryPath() string {
	if c.HistoryFile == "" {
		return ""
	}
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	return filepath.Join(c.configDir, c.HistoryFile)
}
