package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/streamkit/version"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})

	t.Run("empty version defaults to build version", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Version != version.Version {
			t.Errorf("expected version %q, got %q", version.Version, cfg.Version)
		}
	})

	t.Run("explicit version is preserved", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Version: "2.3.4"}
		cfg.ApplyDefaults()
		if cfg.Version != "2.3.4" {
			t.Errorf("expected version '2.3.4', got %q", cfg.Version)
		}
	})

	t.Run("service name propagates to logging", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Logging.Service != "svc" {
			t.Errorf("expected logging service 'svc', got %q", cfg.Logging.Service)
		}
	})

	t.Run("explicit logging service is preserved", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.Logging.Service = "other"
		cfg.ApplyDefaults()
		if cfg.Logging.Service != "other" {
			t.Errorf("expected logging service 'other', got %q", cfg.Logging.Service)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func(name, env string) ServiceConfig {
		cfg := ServiceConfig{Name: name, Environment: env}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", valid("svc", "development"), false, ""},
		{"valid staging", valid("svc", "staging"), false, ""},
		{"valid production", valid("svc", "production"), false, ""},
		{"missing name", valid("", "production"), true, "config.name is required"},
		{"invalid environment", valid("svc", "invalid"), true, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestServiceConfigValidateBadLogging(t *testing.T) {
	cfg := ServiceConfig{Name: "svc", Environment: "production"}
	cfg.ApplyDefaults()
	cfg.Logging.Level = "nonsense"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid logging level")
	}
	if !strings.Contains(err.Error(), "config.logging") {
		t.Errorf("expected error scoped to config.logging, got %q", err.Error())
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: test-service
environment: staging
version: "1.0.0"
streamer:
  prefetch: 8
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	type StreamerSection struct {
		Prefetch int `yaml:"prefetch" mapstructure:"prefetch"`
	}
	type TestConfig struct {
		ServiceConfig `yaml:",inline" mapstructure:",squash"`
		Streamer      StreamerSection `yaml:"streamer" mapstructure:"streamer"`
	}

	var cfg TestConfig
	err := LoadConfig("test-service", &cfg, WithConfigFile(configPath))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "test-service" {
		t.Errorf("expected name 'test-service', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Streamer.Prefetch != 8 {
		t.Errorf("expected prefetch 8, got %d", cfg.Streamer.Prefetch)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	type TestConfig struct {
		ServiceConfig `yaml:",inline" mapstructure:",squash"`
	}

	var cfg TestConfig
	// With no config file found, LoadConfig should still succeed (just empty config)
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/my-svc/config.yml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.ConfigFile != "./cmd/my-svc/config.yml" {
		t.Errorf("expected config file at ./cmd/my-svc/config.yml, got %q", files.ConfigFile)
	}
}

func TestResolverShortName(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/svc/config.yml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("long-prefix-svc", LoaderConfig{})
	if files.ConfigFile != "./cmd/svc/config.yml" {
		t.Errorf("expected short-name config file, got %q", files.ConfigFile)
	}
}

func TestResolverExplicitPathsWin(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config.yml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("svc", LoaderConfig{ConfigFile: "/explicit.yml", EnvFile: "/explicit.env"})
	if files.ConfigFile != "/explicit.yml" {
		t.Errorf("expected explicit config path, got %q", files.ConfigFile)
	}
	if files.EnvFile != "/explicit.env" {
		t.Errorf("expected explicit env path, got %q", files.EnvFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
func (m *mockFS) Getwd() (string, error)    { return "/mock", nil }

func TestWithFileSystemOption(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
}

func TestWithConfigFileOption(t *testing.T) {
	var lc LoaderConfig
	WithConfigFile("/path/to/config.yml")(&lc)
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
}

func TestWithEnvFileOption(t *testing.T) {
	var lc LoaderConfig
	WithEnvFile("/path/to/.env")(&lc)
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"PREFETCH", []string{"prefetch"}},
		{"STREAMER_PREFETCH", []string{"streamer_prefetch", "streamer.prefetch"}},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			got := generateEnvKeyVariants(tc.key)
			for _, want := range tc.want {
				found := false
				for _, g := range got {
					if g == want {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected variant %q in %v", want, got)
				}
			}
		})
	}
}

func TestGenerateEnvKeyVariantsNoDuplicates(t *testing.T) {
	got := generateEnvKeyVariants("LOGGING_NO_COLOR")
	seen := make(map[string]bool)
	for _, v := range got {
		if seen[v] {
			t.Errorf("duplicate variant %q", v)
		}
		seen[v] = true
	}
}
