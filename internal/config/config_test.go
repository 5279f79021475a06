package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/hookrt/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Inspector.Addr != DefaultInspectorAddr {
		t.Errorf("Inspector.Addr = %q, want %q", cfg.Inspector.Addr, DefaultInspectorAddr)
	}
	if cfg.Inspector.History != DefaultHistory {
		t.Errorf("Inspector.History = %d, want %d", cfg.Inspector.History, DefaultHistory)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
	if cfg.Runtime.StrictDeps {
		t.Error("Runtime.StrictDeps should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if !stderrors.Is(err, errors.New("H101")) {
		t.Fatalf("Load on empty dir = %v, want H101", err)
	}

	configJSON := `{
  "name": "counter",
  "runtime": {"strictDeps": true},
  "log": {"level": "debug"},
  "inspector": {"addr": ":9000"}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "counter" {
		t.Errorf("Name = %q, want %q", cfg.Name, "counter")
	}
	if !cfg.Runtime.StrictDeps {
		t.Error("Runtime.StrictDeps should be true")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want default text", cfg.Log.Format)
	}
	if cfg.Inspector.Addr != ":9000" {
		t.Errorf("Inspector.Addr = %q, want %q", cfg.Inspector.Addr, ":9000")
	}
	if cfg.Inspector.History != DefaultHistory {
		t.Errorf("Inspector.History = %d, want default %d", cfg.Inspector.History, DefaultHistory)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `name: counter
runtime:
  strictDeps: true
metrics:
  enabled: false
  namespace: demo
inspector:
  history: 8
`
	if err := os.WriteFile(filepath.Join(tmpDir, YAMLConfigFileName), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Runtime.StrictDeps {
		t.Error("Runtime.StrictDeps should be true")
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false")
	}
	if cfg.Metrics.Namespace != "demo" {
		t.Errorf("Metrics.Namespace = %q, want demo", cfg.Metrics.Namespace)
	}
	if cfg.Inspector.History != 8 {
		t.Errorf("Inspector.History = %d, want 8", cfg.Inspector.History)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if !stderrors.Is(err, errors.New("H100")) {
		t.Fatalf("LoadFile = %v, want H100", err)
	}

	_, err = LoadFile(filepath.Join(tmpDir, "missing.json"))
	if !stderrors.Is(err, errors.New("H101")) {
		t.Fatalf("LoadFile missing = %v, want H101", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("HOOKRT_RUNTIME_STRICT_DEPS", "true")
	t.Setenv("HOOKRT_LOG_LEVEL", "warn")
	t.Setenv("HOOKRT_INSPECTOR_HISTORY", "3")

	cfg := New()
	cfg.Inspector.Addr = ":1234"
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv error: %v", err)
	}

	if !cfg.Runtime.StrictDeps {
		t.Error("Runtime.StrictDeps should be set from env")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Inspector.History != 3 {
		t.Errorf("Inspector.History = %d, want 3", cfg.Inspector.History)
	}
	if cfg.Inspector.Addr != ":1234" {
		t.Errorf("Inspector.Addr = %q, unset env must not override", cfg.Inspector.Addr)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("HOOKRT_INSPECTOR_HISTORY", "many")

	err := New().ApplyEnv()
	if !stderrors.Is(err, errors.New("H102")) {
		t.Fatalf("ApplyEnv = %v, want H102", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "json format", mutate: func(c *Config) { c.Log.Format = "json" }},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "negative history", mutate: func(c *Config) { c.Inspector.History = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var b strings.Builder
	cfg := New()
	cfg.Name = "counter"
	cfg.Log.Level = "warn"

	logger := cfg.Logger(&b)
	logger.Info("hidden")
	logger.Warn("shown")

	out := b.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "app=counter") {
		t.Errorf("unexpected log output: %q", out)
	}

	level, err := cfg.LogLevel()
	if err != nil || level != slog.LevelWarn {
		t.Errorf("LogLevel() = %v, %v", level, err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"out.json", "out.yaml"} {
		cfg := New()
		cfg.Name = "saved"
		path := filepath.Join(tmpDir, name)
		if err := cfg.SaveTo(path); err != nil {
			t.Fatalf("SaveTo(%s) error: %v", name, err)
		}

		loaded, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s) error: %v", name, err)
		}
		if loaded.Name != "saved" {
			t.Errorf("%s: Name = %q, want saved", name, loaded.Name)
		}
	}
}

func TestLoadOrDefault(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadOrDefault("", tmpDir)
	if err != nil {
		t.Fatalf("LoadOrDefault error: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("defaults should have no path, got %q", cfg.Path())
	}

	if _, err := LoadOrDefault(filepath.Join(tmpDir, "nope.yaml"), tmpDir); err == nil {
		t.Error("explicit missing path should fail")
	}

	if Exists(tmpDir) {
		t.Error("Exists should be false for an empty dir")
	}
}
