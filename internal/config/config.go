package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/hookrt/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "hookrt.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "hookrt.yaml"

	// EnvPrefix prefixes every environment variable read by ApplyEnv.
	EnvPrefix = "HOOKRT_"

	// DefaultInspectorAddr is the default devtools inspector address.
	DefaultInspectorAddr = "localhost:7070"

	// DefaultHistory is the default number of cycles kept by the inspector.
	DefaultHistory = 64

	// DefaultNamespace is the default metrics namespace and tracer name.
	DefaultNamespace = "hookrt"
)

// Config represents the complete hookrt configuration.
type Config struct {
	// Name is the instance name used in logs, metrics and the inspector.
	Name string `json:"name,omitempty" yaml:"name,omitempty" env:"NAME"`

	// Runtime contains hook runtime behavior.
	Runtime RuntimeConfig `json:"runtime" yaml:"runtime" envPrefix:"RUNTIME_"`

	// Log contains logging configuration.
	Log LogConfig `json:"log" yaml:"log" envPrefix:"LOG_"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" envPrefix:"METRICS_"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing" yaml:"tracing" envPrefix:"TRACING_"`

	// Inspector contains devtools inspector configuration.
	Inspector InspectorConfig `json:"inspector" yaml:"inspector" envPrefix:"INSPECTOR_"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RuntimeConfig controls hook runtime behavior.
type RuntimeConfig struct {
	// StrictDeps aborts a cycle when an effect's dependency list changes
	// length. When false the change is logged and the effect fires.
	StrictDeps bool `json:"strictDeps,omitempty" yaml:"strictDeps,omitempty" env:"STRICT_DEPS"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty" env:"LEVEL"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty" env:"FORMAT"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" env:"ENABLED"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty" env:"NAMESPACE"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" env:"ENABLED"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty" env:"TRACER_NAME"`
}

// InspectorConfig contains devtools inspector settings.
type InspectorConfig struct {
	// Addr is the listen address of the inspector HTTP server.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty" env:"ADDR"`

	// History is the number of recent cycles kept for GET /cycles.
	History int `json:"history,omitempty" yaml:"history,omitempty" env:"HISTORY"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultNamespace,
		},
		Inspector: InspectorConfig{
			Addr:    DefaultInspectorAddr,
			History: DefaultHistory,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for hookrt.json, then hookrt.yaml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("H101").
		Because("no %s or %s in %s", ConfigFileName, YAMLConfigFileName, dir).
		WithSuggestion("Create hookrt.json or pass --config")
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("H101").
				Because("%s does not exist", path)
		}
		return nil, errors.New("H100").Wrap(err)
	}

	cfg := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("H100").
			Because("failed to parse %s", filepath.Base(path)).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// ApplyEnv overlays HOOKRT_* environment variables onto the config.
// Variables that are not set leave the current values untouched.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.New("H102").Because("parse env").Wrap(err)
	}
	c.applyDefaults()
	return nil
}

// SaveTo writes the configuration to the specified path, as YAML when the
// path ends in .yaml or .yml.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("H100").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("H100").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
	if c.Inspector.Addr == "" {
		c.Inspector.Addr = DefaultInspectorAddr
	}
	if c.Inspector.History == 0 {
		c.Inspector.History = DefaultHistory
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("H102").Because("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Inspector.History < 0 {
		return errors.New("H102").Because("inspector.history must not be negative")
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, errors.New("H102").Because("log.level %q", c.Log.Level).Wrap(err)
	}
	return level, nil
}

// Logger builds a slog.Logger writing to w with the configured level and
// format. An invalid level falls back to info.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := c.LogLevel()
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if c.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	if c.Name != "" {
		logger = logger.With("app", c.Name)
	}
	return logger
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// LoadOrDefault loads the config file at path, or from dir when path is
// empty. A missing file in dir yields the defaults. Environment overrides
// are applied in every case.
func LoadOrDefault(path, dir string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch {
	case path != "":
		cfg, err = LoadFile(path)
	case Exists(dir):
		cfg, err = Load(dir)
	default:
		cfg = New()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}
