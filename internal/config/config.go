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
	// Default values
	DefaultBatchSize        = 8
	DefaultCacheCapacity    = 256
	DefaultDividerTolerance = 5.0
	DefaultRowTolerance     = 5.0
	DefaultOCRLanguage      = "eng"
	DefaultLogLevel         = "info"
	DefaultLogStyle         = "terminal"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the harvest run
type Config struct {
	// Template and input
	TemplatePath string
	InputDir     string

	// Batch processing
	BatchSize     int
	CacheCapacity int
	WorkDir       string

	// Extraction tuning
	DividerTolerance float64
	RowTolerance     float64
	OCRLanguage      string
	Method           string // preferred method override, empty keeps the template's choice

	// Application configuration
	Version  string
	LogLevel string
	LogStyle string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		InputDir:         currentDir,
		BatchSize:        DefaultBatchSize,
		CacheCapacity:    DefaultCacheCapacity,
		DividerTolerance: DefaultDividerTolerance,
		RowTolerance:     DefaultRowTolerance,
		OCRLanguage:      DefaultOCRLanguage,
		Version:          "1.0.0",
		LogLevel:         DefaultLogLevel,
		LogStyle:         DefaultLogStyle,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.InputDir != "" {
		if expandedPath, err := filepath.Abs(cfg.InputDir); err == nil {
			cfg.InputDir = expandedPath
		}
	}
	if cfg.TemplatePath != "" {
		if expandedPath, err := filepath.Abs(cfg.TemplatePath); err == nil {
			cfg.TemplatePath = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PDFHARVEST")
	viper.AutomaticEnv()

	viper.SetDefault("template", cfg.TemplatePath)
	viper.SetDefault("dir", cfg.InputDir)
	viper.SetDefault("batchsize", cfg.BatchSize)
	viper.SetDefault("cachecapacity", cfg.CacheCapacity)
	viper.SetDefault("workdir", cfg.WorkDir)
	viper.SetDefault("dividertolerance", cfg.DividerTolerance)
	viper.SetDefault("rowtolerance", cfg.RowTolerance)
	viper.SetDefault("ocrlanguage", cfg.OCRLanguage)
	viper.SetDefault("method", cfg.Method)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("logstyle", cfg.LogStyle)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("template", cfg.TemplatePath, "Path to the template JSON file")
	pflag.String("dir", cfg.InputDir, "Directory containing PDF documents")
	pflag.Int("batchsize", cfg.BatchSize, "Documents per batch")
	pflag.Int("cachecapacity", cfg.CacheCapacity, "Extraction result cache capacity")
	pflag.String("workdir", cfg.WorkDir, "Root for per-document working areas (default: system temp)")
	pflag.Float64("dividertolerance", cfg.DividerTolerance, "Distance within which merged column dividers collapse")
	pflag.Float64("rowtolerance", cfg.RowTolerance, "Vertical distance within which text joins one row")
	pflag.String("ocrlanguage", cfg.OCRLanguage, "OCR language code")
	pflag.String("method", cfg.Method, "Extraction method override (native-table, layout-text, ocr-text, full-pipeline)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.String("logstyle", cfg.LogStyle, "Log style (terminal, json, noop)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"template", "dir", "batchsize", "cachecapacity", "workdir",
		"dividertolerance", "rowtolerance", "ocrlanguage", "method",
		"loglevel", "logstyle",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npdfharvest - apply an invoice extraction template to PDF documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --template=invoice.json --dir=/path/to/pdfs\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --template=invoice.json --dir=/path/to/pdfs --method=ocr-text\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDFHARVEST_TEMPLATE          Template JSON path\n")
		fmt.Fprintf(os.Stderr, "  PDFHARVEST_DIR               Document directory\n")
		fmt.Fprintf(os.Stderr, "  PDFHARVEST_BATCHSIZE         Documents per batch\n")
		fmt.Fprintf(os.Stderr, "  PDFHARVEST_CACHECAPACITY     Result cache capacity\n")
		fmt.Fprintf(os.Stderr, "  PDFHARVEST_WORKDIR           Working area root\n")
		fmt.Fprintf(os.Stderr, "  PDFHARVEST_DIVIDERTOLERANCE  Divider merge tolerance\n")
		fmt.Fprintf(os.Stderr, "  PDFHARVEST_ROWTOLERANCE      Row clustering tolerance\n")
		fmt.Fprintf(os.Stderr, "  PDFHARVEST_OCRLANGUAGE       OCR language\n")
		fmt.Fprintf(os.Stderr, "  PDFHARVEST_METHOD            Extraction method override\n")
		fmt.Fprintf(os.Stderr, "  PDFHARVEST_LOGLEVEL          Log level\n")
		fmt.Fprintf(os.Stderr, "  PDFHARVEST_LOGSTYLE          Log style\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.TemplatePath = viper.GetString("template")
	cfg.InputDir = viper.GetString("dir")
	cfg.BatchSize = viper.GetInt("batchsize")
	cfg.CacheCapacity = viper.GetInt("cachecapacity")
	cfg.WorkDir = viper.GetString("workdir")
	cfg.DividerTolerance = viper.GetFloat64("dividertolerance")
	cfg.RowTolerance = viper.GetFloat64("rowtolerance")
	cfg.OCRLanguage = viper.GetString("ocrlanguage")
	cfg.Method = viper.GetString("method")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.LogStyle = viper.GetString("logstyle")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.TemplatePath == "" {
		return errors.New("template path cannot be empty")
	}
	if _, err := os.Stat(c.TemplatePath); err != nil {
		return fmt.Errorf("cannot access template %s: %w", c.TemplatePath, err)
	}

	if c.InputDir == "" {
		return errors.New("document directory cannot be empty")
	}
	if info, err := os.Stat(c.InputDir); err != nil {
		return fmt.Errorf("cannot access document directory %s: %w", c.InputDir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", c.InputDir)
	}

	if c.WorkDir != "" {
		if _, err := os.Stat(c.WorkDir); os.IsNotExist(err) {
			if err := os.MkdirAll(c.WorkDir, DefaultDirPerm); err != nil {
				return fmt.Errorf("cannot create working directory %s: %w", c.WorkDir, err)
			}
		} else if err != nil {
			return fmt.Errorf("cannot access working directory %s: %w", c.WorkDir, err)
		}
	}

	if c.BatchSize <= 0 {
		return errors.New("batch size must be positive")
	}
	if c.CacheCapacity <= 0 {
		return errors.New("cache capacity must be positive")
	}
	if c.DividerTolerance < 0 {
		return errors.New("divider tolerance cannot be negative")
	}
	if c.RowTolerance < 0 {
		return errors.New("row tolerance cannot be negative")
	}

	switch c.Method {
	case "", "native-table", "layout-text", "ocr-text", "full-pipeline":
	default:
		return fmt.Errorf("invalid method: %s (must be one of: native-table, layout-text, ocr-text, full-pipeline)", c.Method)
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

	validLogStyles := map[string]bool{
		"terminal": true,
		"json":     true,
		"noop":     true,
	}
	if !validLogStyles[c.LogStyle] {
		return fmt.Errorf("invalid log style: %s (must be one of: terminal, json, noop)", c.LogStyle)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Template: %s, InputDir: %s, BatchSize: %d, CacheCapacity: %d, Method: %s, LogLevel: %s}",
		c.TemplatePath, c.InputDir, c.BatchSize, c.CacheCapacity, c.Method, c.LogLevel)
}
