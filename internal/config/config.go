package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeCLI   = "cli"
	ModeStdio = "stdio"

	// Default values
	DefaultLogLevel      = "info"
	DefaultMaxFileSize   = 100 * 1024 * 1024 // 100MB
	DefaultFirstPage     = 2                 // page 1 is the cover sheet
	DefaultCropTop       = 130.0             // page header height in page units
	DefaultLineThreshold = 5.0               // vertical proximity for line grouping
	DefaultTrailingPages = 2                 // boilerplate terms at the end

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the order confirmation extractor.
type Config struct {
	// Run configuration
	Mode    string // "cli" or "stdio"
	PDFPath string // positional argument in cli mode

	// Extraction configuration
	FirstPage     int     // first page to scan, 1-indexed
	LastPage      int     // last page to scan; 0 means page count minus TrailingPages
	CropTop       float64 // header crop offset in page units
	LineThreshold float64 // vertical line-grouping threshold
	TrailingPages int     // boilerplate pages assumed at the end of the document

	// Output configuration
	OutputDir string

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:          ModeCLI,
		FirstPage:     DefaultFirstPage,
		LastPage:      0,
		CropTop:       DefaultCropTop,
		LineThreshold: DefaultLineThreshold,
		TrailingPages: DefaultTrailingPages,
		OutputDir:     currentDir,
		Version:       "1.0.0",
		ServerName:    "ordrecsv",
		LogLevel:      DefaultLogLevel,
		MaxFileSize:   DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// The PDF path is the single positional argument.
	if pflag.NArg() > 0 {
		cfg.PDFPath = pflag.Arg(0)
	}

	// Expand paths if needed
	if cfg.OutputDir != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDir); err == nil {
			cfg.OutputDir = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("ORDRECSV")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("first-page", cfg.FirstPage)
	viper.SetDefault("last-page", cfg.LastPage)
	viper.SetDefault("crop-top", cfg.CropTop)
	viper.SetDefault("line-threshold", cfg.LineThreshold)
	viper.SetDefault("trailing-pages", cfg.TrailingPages)
	viper.SetDefault("out", cfg.OutputDir)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'cli' to convert one document, 'stdio' to serve MCP tools")
	pflag.Int("first-page", cfg.FirstPage, "First page to scan (1-indexed)")
	pflag.Int("last-page", cfg.LastPage, "Last page to scan (0 = page count minus trailing pages)")
	pflag.Float64("crop-top", cfg.CropTop, "Header crop offset in page units")
	pflag.Float64("line-threshold", cfg.LineThreshold, "Vertical proximity threshold for line grouping")
	pflag.Int("trailing-pages", cfg.TrailingPages, "Boilerplate pages assumed at the end of the document")
	pflag.String("out", cfg.OutputDir, "Directory for the generated CSV files")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("first-page", pflag.Lookup("first-page"))
	_ = viper.BindPFlag("last-page", pflag.Lookup("last-page"))
	_ = viper.BindPFlag("crop-top", pflag.Lookup("crop-top"))
	_ = viper.BindPFlag("line-threshold", pflag.Lookup("line-threshold"))
	_ = viper.BindPFlag("trailing-pages", pflag.Lookup("trailing-pages"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nordrecsv - extract order confirmation tables from a PDF into CSV files\n\n")
		fmt.Fprintf(os.Stderr, "  %s [options] <order.pdf>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ordre.pdf                        # whole document minus trailing terms\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --first-page=2 --last-page=6 ordre.pdf\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --out=/tmp/csv ordre.pdf         # write CSV files elsewhere\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio                     # serve extraction over MCP stdio\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  ORDRECSV_MODE         Run mode\n")
		fmt.Fprintf(os.Stderr, "  ORDRECSV_OUT          Output directory\n")
		fmt.Fprintf(os.Stderr, "  ORDRECSV_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  ORDRECSV_MAXFILESIZE  Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.FirstPage = viper.GetInt("first-page")
	cfg.LastPage = viper.GetInt("last-page")
	cfg.CropTop = viper.GetFloat64("crop-top")
	cfg.LineThreshold = viper.GetFloat64("line-threshold")
	cfg.TrailingPages = viper.GetInt("trailing-pages")
	cfg.OutputDir = viper.GetString("out")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Mode != ModeCLI && c.Mode != ModeStdio {
		return errors.New("mode must be either 'cli' or 'stdio'")
	}

	// The PDF path only matters in cli mode; stdio mode receives paths per
	// tool call.
	if c.Mode == ModeCLI && c.PDFPath == "" {
		return errors.New("a PDF file path is required")
	}

	if c.FirstPage < 1 {
		return errors.New("first page must be at least 1")
	}
	if c.LastPage != 0 && c.LastPage < c.FirstPage {
		return errors.New("last page must not precede first page")
	}
	if c.CropTop < 0 {
		return errors.New("crop offset cannot be negative")
	}
	if c.LineThreshold <= 0 {
		return errors.New("line threshold must be positive")
	}
	if c.TrailingPages < 0 {
		return errors.New("trailing pages cannot be negative")
	}

	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}
	if _, err := os.Stat(c.OutputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.OutputDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", c.OutputDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access output directory %s: %w", c.OutputDir, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsStdioMode returns true if the process serves MCP tools over stdio.
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, PDFPath: %s, Pages: %d-%d, CropTop: %.0f, LineThreshold: %.1f, OutputDir: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.PDFPath, c.FirstPage, c.LastPage, c.CropTop, c.LineThreshold, c.OutputDir, c.LogLevel, c.MaxFileSize)
}
