package config

import (
	"os"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test default values
	if cfg.Mode != "stdio" {
		t.Errorf("Expected default mode to be 'stdio', got '%s'", cfg.Mode)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Expected default host to be '127.0.0.1', got '%s'", cfg.Host)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected default port to be 8080, got %d", cfg.Port)
	}

	if cfg.Version != "1.0.0" {
		t.Errorf("Expected default version to be '1.0.0', got '%s'", cfg.Version)
	}

	if cfg.ServerName != "complaint-extract" {
		t.Errorf("Expected default server name to be 'complaint-extract', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}

	if cfg.OCREnabled {
		t.Error("Expected OCR fallback to be disabled by default")
	}

	if cfg.OCRLanguage != "chi_sim" {
		t.Errorf("Expected default OCR language to be 'chi_sim', got '%s'", cfg.OCRLanguage)
	}

	if cfg.CharBucketHeight != 4 {
		t.Errorf("Expected default char bucket height to be 4, got %v", cfg.CharBucketHeight)
	}

	if cfg.WordBucketHeight != 20 {
		t.Errorf("Expected default word bucket height to be 20, got %v", cfg.WordBucketHeight)
	}

	if cfg.MaxDefendantLen != 50 {
		t.Errorf("Expected default max defendant length to be 50, got %d", cfg.MaxDefendantLen)
	}

	// Test that document directory is set to current working directory by default
	currentDir, _ := os.Getwd()
	if cfg.DocumentDirectory != currentDir {
		t.Errorf("Expected default document directory to be '%s', got '%s'", currentDir, cfg.DocumentDirectory)
	}
}

func validTestConfig() *Config {
	cfg := DefaultConfig()
	cfg.DocumentDirectory = "/tmp/test"
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config - stdio mode",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid config - server mode",
			mutate: func(c *Config) {
				c.Mode = "server"
			},
			wantErr: false,
		},
		{
			name: "invalid mode",
			mutate: func(c *Config) {
				c.Mode = "invalid"
			},
			wantErr: true,
		},
		{
			name: "invalid port - too low (server mode)",
			mutate: func(c *Config) {
				c.Mode = "server"
				c.Port = 0
			},
			wantErr: true,
		},
		{
			name: "invalid port - too high (server mode)",
			mutate: func(c *Config) {
				c.Mode = "server"
				c.Port = 70000
			},
			wantErr: true,
		},
		{
			name: "invalid port ignored in stdio mode",
			mutate: func(c *Config) {
				c.Port = 0
			},
			wantErr: false,
		},
		{
			name: "empty document directory",
			mutate: func(c *Config) {
				c.DocumentDirectory = ""
			},
			wantErr: true,
		},
		{
			name: "non-positive max file size",
			mutate: func(c *Config) {
				c.MaxFileSize = 0
			},
			wantErr: true,
		},
		{
			name: "zero char bucket height",
			mutate: func(c *Config) {
				c.CharBucketHeight = 0
			},
			wantErr: true,
		},
		{
			name: "negative word bucket height",
			mutate: func(c *Config) {
				c.WordBucketHeight = -1
			},
			wantErr: true,
		},
		{
			name: "repeat run too short",
			mutate: func(c *Config) {
				c.RepeatRunLength = 1
			},
			wantErr: true,
		},
		{
			name: "dominant ratio out of range",
			mutate: func(c *Config) {
				c.DominantCharRatio = 1.5
			},
			wantErr: true,
		},
		{
			name: "non-positive max defendant length",
			mutate: func(c *Config) {
				c.MaxDefendantLen = 0
			},
			wantErr: true,
		},
		{
			name: "OCR enabled without language",
			mutate: func(c *Config) {
				c.OCREnabled = true
				c.OCRLanguage = ""
			},
			wantErr: true,
		},
		{
			name: "non-positive cache TTL",
			mutate: func(c *Config) {
				c.CacheTTL = 0
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			mutate: func(c *Config) {
				c.LogLevel = "verbose"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigAddress(t *testing.T) {
	cfg := &Config{Host: "0.0.0.0", Port: 9090}
	if got := cfg.Address(); got != "0.0.0.0:9090" {
		t.Errorf("Address() = %v, want 0.0.0.0:9090", got)
	}
}

func TestConfigModeHelpers(t *testing.T) {
	cfg := validTestConfig()
	if !cfg.IsStdioMode() || cfg.IsServerMode() {
		t.Error("default config should report stdio mode")
	}

	cfg.Mode = ModeServer
	if cfg.IsStdioMode() || !cfg.IsServerMode() {
		t.Error("server config should report server mode")
	}

	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Error("IsDebug() should be true for debug log level")
	}
}
