// Package config loads and validates the shell's configuration directory.
package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	// ConfigurationName is the file name looked up in a config directory.
	ConfigurationName = "config.yaml"
	// HostKeyName is the SSH host key file written by Initialize.
	HostKeyName = "host_key"
)

// Config holds the tunables for a shell session and the optional SSH
// server. Fields map 1:1 to keys in config.yaml.
type Config struct {
	configDir string

	// Prompt is the PS1-style prompt template. Supports the \u, \h, \w
	// and \$ escapes.
	Prompt string `json:"prompt"`

	// HistorySize is the number of lines kept for recall.
	HistorySize int `json:"history_size" validate:"gte=1"`
	// HistoryFile persists history across sessions; empty disables it.
	HistoryFile string `json:"history_file"`

	// MaxPipelineStages bounds the stages in a single pipeline.
	MaxPipelineStages int `json:"max_pipeline_stages" validate:"gte=1,lte=64"`
	// MaxWordLength bounds a single token produced by the tokenizer.
	MaxWordLength int `json:"max_word_length" validate:"gte=1"`

	SSH SSH `json:"ssh"`
}

// SSH configures the optional "serve" mode.
type SSH struct {
	Port             int      `json:"port" validate:"gte=0,lte=65535"`
	Banner           string   `json:"banner"`
	HostKeyPath      string   `json:"host_key_path"`
	AllowAnyPassword bool     `json:"allow_any_password"`
	Passwords        []string `json:"passwords" validate:"unique"`
}

// Validate the configuration for basic semantic errors.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	return validate.Struct(c)
}

// Dir returns the directory the configuration was loaded from.
func (c *Config) Dir() string {
	return c.configDir
}

func defaultConfig() *Config {
	var out Config
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the built-in configuration, used when no config
// directory exists.
func Default() *Config {
	return defaultConfig()
}
