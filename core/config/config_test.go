package config

import (
	"io/ioutil"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yamlv2 "gopkg.in/yaml.v2"
)

func testLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

func TestDefaultConfigShape(t *testing.T) {
	// The embedded default must parse strictly and expose every key the
	// Config struct declares.
	var parsed yamlv2.MapSlice
	require.NoError(t, yamlv2.Unmarshal(defaultConfigData, &parsed))

	keys := make(map[string]bool)
	for _, item := range parsed {
		keys[item.Key.(string)] = true
	}

	for _, want := range []string{
		"prompt",
		"history_size",
		"history_file",
		"max_pipeline_stages",
		"max_word_length",
		"ssh",
	} {
		assert.True(t, keys[want], "default config missing key %q", want)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "shell> ", cfg.Prompt)
	assert.Equal(t, 50, cfg.HistorySize)
	assert.Equal(t, 16, cfg.MaxPipelineStages)
	assert.Equal(t, 1024, cfg.MaxWordLength)
	assert.Equal(t, 2222, cfg.SSH.Port)
	assert.NoError(t, cfg.Validate())
}

func TestInitializeAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, Initialize(fs, "/etc/shell", testLogger()))

	cfg, err := Load(fs, "/etc/shell")
	require.NoError(t, err)
	assert.Equal(t, "/etc/shell", cfg.Dir())
	assert.Equal(t, 50, cfg.HistorySize)

	pem, err := cfg.HostKeyPEM(fs)
	require.NoError(t, err)
	assert.Contains(t, string(pem), "RSA PRIVATE KEY")
}

func TestInitializeIsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, Initialize(fs, "/etc/shell", testLogger()))
	first, err := afero.ReadFile(fs, filepath.Join("/etc/shell", HostKeyName))
	require.NoError(t, err)

	require.NoError(t, Initialize(fs, "/etc/shell", testLogger()))
	second, err := afero.ReadFile(fs, filepath.Join("/etc/shell", HostKeyName))
	require.NoError(t, err)

	assert.Equal(t, first, second, "second Initialize must not regenerate the key")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/shell/config.yaml",
		[]byte("promt: oops\n"), 0600))

	_, err := Load(fs, "/etc/shell")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "couldn't parse")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/shell/config.yaml",
		[]byte("history_size: 0\n"), 0600))

	_, err := Load(fs, "/etc/shell")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadOverridesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/shell/config.yaml",
		[]byte("prompt: \"\\\\u@\\\\h \"\nmax_pipeline_stages: 4\n"), 0600))

	cfg, err := Load(fs, "/etc/shell")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxPipelineStages)
	// Untouched keys keep their defaults.
	assert.Equal(t, 50, cfg.HistorySize)
	assert.True(t, strings.Contains(cfg.Prompt, `\u`))
}

func TestHistoryPath(t *testing.T) {
	cfg := Default()
	cfg.configDir = "/etc/shell"

	assert.Equal(t, "", cfg.HistoryPath())

	cfg.HistoryFile = "history"
	assert.Equal(t, filepath.Join("/etc/shell", "history"), cfg.HistoryPath())

	cfg.HistoryFile = "/var/lib/shell/history"
	assert.Equal(t, "/var/lib/shell/history", cfg.HistoryPath())
}
