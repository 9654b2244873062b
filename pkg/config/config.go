package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the image downloader.
type Config struct {
	// Search endpoint settings
	Search SearchConfig `yaml:"search" json:"search"`

	// Download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SearchConfig holds search endpoint configuration.
type SearchConfig struct {
	AdultFilter bool          `yaml:"adult_filter" json:"adult_filter"`
	Filters     string        `yaml:"filters" json:"filters"`
	PageSize    int           `yaml:"page_size" json:"page_size"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent"`
}

// DownloadConfig holds download pool configuration.
type DownloadConfig struct {
	Limit   int           `yaml:"limit" json:"limit"`
	Threads int           `yaml:"threads" json:"threads"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// OutputConfig holds output directory configuration.
type OutputConfig struct {
	// BaseDirectory is the parent for the per-query folder.
	BaseDirectory string `yaml:"base_directory" json:"base_directory"`
	// Directory, when set, is used verbatim instead of BaseDirectory/<query>.
	Directory string `yaml:"directory" json:"directory"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			AdultFilter: true,
			Filters:     "",
			PageSize:    35,
			Timeout:     10 * time.Second,
			UserAgent:   "Mozilla/5.0 (X11; Fedora; Linux x86_64; rv:60.0) Gecko/20100101 Firefox/60.0",
		},
		Download: DownloadConfig{
			Limit:   100,
			Threads: 20,
			Timeout: 30 * time.Second,
		},
		Output: OutputConfig{
			BaseDirectory: "images",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// DirFor resolves the output directory for a query. Spaces in the query
// become underscores so the folder name stays shell friendly.
func (o OutputConfig) DirFor(query string) string {
	if o.Directory != "" {
		return o.Directory
	}
	folder := strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
	return filepath.Join(o.BaseDirectory, folder)
}

// LoadFromEnv loads configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	if outputDir := os.Getenv("BINGRAB_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}
	if baseDir := os.Getenv("BINGRAB_BASE_DIR"); baseDir != "" {
		c.Output.BaseDirectory = baseDir
	}
	if limit := os.Getenv("BINGRAB_LIMIT"); limit != "" {
		var val int
		fmt.Sscanf(limit, "%d", &val)
		if val > 0 {
			c.Download.Limit = val
		}
	}
	if threads := os.Getenv("BINGRAB_THREADS"); threads != "" {
		var val int
		fmt.Sscanf(threads, "%d", &val)
		if val > 0 {
			c.Download.Threads = val
		}
	}
	if filters := os.Getenv("BINGRAB_FILTERS"); filters != "" {
		c.Search.Filters = filters
	}
	if adult := os.Getenv("BINGRAB_ADULT_FILTER"); adult != "" {
		c.Search.AdultFilter = strings.ToLower(adult) != "false"
	}
	if userAgent := os.Getenv("BINGRAB_USER_AGENT"); userAgent != "" {
		c.Search.UserAgent = userAgent
	}
	if logLevel := os.Getenv("BINGRAB_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations.
func (c *Config) findConfigFile() string {
	locations := []string{
		".bingrab.yaml",
		".bingrab.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "bingrab", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "bingrab", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".bingrab.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Download.Limit <= 0 {
		errs = append(errs, errors.New("limit must be positive"))
	}
	if c.Download.Threads <= 0 {
		errs = append(errs, errors.New("threads must be positive"))
	}
	if c.Download.Timeout <= 0 {
		errs = append(errs, errors.New("download timeout must be positive"))
	}
	if c.Search.PageSize <= 0 {
		errs = append(errs, errors.New("page size must be positive"))
	}
	if c.Search.Timeout <= 0 {
		errs = append(errs, errors.New("search timeout must be positive"))
	}
	if c.Output.BaseDirectory == "" && c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if outputDir, ok := flags["output-dir"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if limit, ok := flags["limit"].(int); ok && limit != 0 {
		c.Download.Limit = limit
	}
	if threads, ok := flags["threads"].(int); ok && threads != 0 {
		c.Download.Threads = threads
	}
	if filters, ok := flags["filters"].(string); ok && filters != "" {
		c.Search.Filters = filters
	}
	if disabled, ok := flags["disable-adult-filter"].(bool); ok && disabled {
		c.Search.AdultFilter = false
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".bingrab.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
