package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeCLI {
		t.Errorf("Expected default mode to be 'cli', got '%s'", cfg.Mode)
	}
	if cfg.FirstPage != 2 {
		t.Errorf("Expected default first page to be 2, got %d", cfg.FirstPage)
	}
	if cfg.LastPage != 0 {
		t.Errorf("Expected default last page to be 0 (auto), got %d", cfg.LastPage)
	}
	if cfg.CropTop != 130.0 {
		t.Errorf("Expected default crop offset to be 130, got %f", cfg.CropTop)
	}
	if cfg.LineThreshold != 5.0 {
		t.Errorf("Expected default line threshold to be 5, got %f", cfg.LineThreshold)
	}
	if cfg.TrailingPages != 2 {
		t.Errorf("Expected default trailing pages to be 2, got %d", cfg.TrailingPages)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}
	if cfg.ServerName != "ordrecsv" {
		t.Errorf("Expected default server name to be 'ordrecsv', got '%s'", cfg.ServerName)
	}

	currentDir, _ := os.Getwd()
	if cfg.OutputDir != currentDir {
		t.Errorf("Expected default output directory to be '%s', got '%s'", currentDir, cfg.OutputDir)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func(mutate func(*Config)) *Config {
		cfg := DefaultConfig()
		cfg.PDFPath = "order.pdf"
		cfg.OutputDir = t.TempDir()
		if mutate != nil {
			mutate(cfg)
		}
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid cli config",
			config:  valid(nil),
			wantErr: false,
		},
		{
			name: "valid stdio config without pdf path",
			config: valid(func(c *Config) {
				c.Mode = ModeStdio
				c.PDFPath = ""
			}),
			wantErr: false,
		},
		{
			name:    "invalid mode",
			config:  valid(func(c *Config) { c.Mode = "batch" }),
			wantErr: true,
		},
		{
			name:    "cli mode requires a pdf path",
			config:  valid(func(c *Config) { c.PDFPath = "" }),
			wantErr: true,
		},
		{
			name:    "first page below 1",
			config:  valid(func(c *Config) { c.FirstPage = 0 }),
			wantErr: true,
		},
		{
			name:    "last page before first page",
			config:  valid(func(c *Config) { c.FirstPage = 5; c.LastPage = 3 }),
			wantErr: true,
		},
		{
			name:    "explicit last page",
			config:  valid(func(c *Config) { c.LastPage = 15 }),
			wantErr: false,
		},
		{
			name:    "negative crop offset",
			config:  valid(func(c *Config) { c.CropTop = -1 }),
			wantErr: true,
		},
		{
			name:    "zero line threshold",
			config:  valid(func(c *Config) { c.LineThreshold = 0 }),
			wantErr: true,
		},
		{
			name:    "negative trailing pages",
			config:  valid(func(c *Config) { c.TrailingPages = -1 }),
			wantErr: true,
		},
		{
			name:    "empty output directory",
			config:  valid(func(c *Config) { c.OutputDir = "" }),
			wantErr: true,
		},
		{
			name:    "zero max file size",
			config:  valid(func(c *Config) { c.MaxFileSize = 0 }),
			wantErr: true,
		},
		{
			name:    "invalid log level",
			config:  valid(func(c *Config) { c.LogLevel = "verbose" }),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateCreatesOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PDFPath = "order.pdf"
	cfg.OutputDir = filepath.Join(t.TempDir(), "csv", "out")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if _, err := os.Stat(cfg.OutputDir); err != nil {
		t.Errorf("Validate() did not create output directory: %v", err)
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.IsDebug() {
		t.Error("IsDebug() = true for default config")
	}
	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Error("IsDebug() = false with debug log level")
	}

	if cfg.IsStdioMode() {
		t.Error("IsStdioMode() = true for default config")
	}
	cfg.Mode = ModeStdio
	if !cfg.IsStdioMode() {
		t.Error("IsStdioMode() = false with stdio mode")
	}

	if cfg.String() == "" {
		t.Error("String() returned empty string")
	}
}
