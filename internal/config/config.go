// Package config loads showmcp configuration from YAML files and
// environment variables.
//
// Precedence, lowest to highest: built-in defaults, the user config at
// ~/.config/showmcp/config.yaml, the project config .showmcp.yaml in the
// working directory, then SHOWMCP_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// StoreDriver selects the project store backend.
type StoreDriver string

const (
	DriverSQLite StoreDriver = "sqlite"
	DriverFile   StoreDriver = "file"
	DriverMemory StoreDriver = "memory"
)

// Config is the complete showmcp configuration.
type Config struct {
	Version   int             `yaml:"version" json:"version"`
	Store     StoreConfig     `yaml:"store" json:"store"`
	Search    SearchConfig    `yaml:"search" json:"search"`
	Server    ServerConfig    `yaml:"server" json:"server"`
	Watch     WatchConfig     `yaml:"watch" json:"watch"`
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
}

// StoreConfig configures where project records are read from.
type StoreConfig struct {
	// Driver is "sqlite", "file", or "memory".
	Driver StoreDriver `yaml:"driver" json:"driver"`

	// Path is the SQLite database file or the JSON record directory,
	// depending on the driver. Ignored for "memory".
	Path string `yaml:"path" json:"path"`
}

// SearchConfig configures result limits and scoring weights.
// Weights are relative; only their ratios matter for ranking.
type SearchConfig struct {
	// TitleWeight scores a query token matching a section title.
	TitleWeight float64 `yaml:"title_weight" json:"title_weight"`

	// ContentWeight scores a substring match in a section body.
	ContentWeight float64 `yaml:"content_weight" json:"content_weight"`

	// KeywordWeight scores membership in a section's keyword set.
	KeywordWeight float64 `yaml:"keyword_weight" json:"keyword_weight"`

	// TechnologyWeight scores membership in the project technology set.
	TechnologyWeight float64 `yaml:"technology_weight" json:"technology_weight"`

	// DefaultLimit is the result count when the caller passes none.
	DefaultLimit int `yaml:"default_limit" json:"default_limit"`

	// MaxLimit caps the requested result count.
	MaxLimit int `yaml:"max_limit" json:"max_limit"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
}

// WatchConfig configures record-directory watching for the file driver.
type WatchConfig struct {
	// Enabled turns on fsnotify-based cache eviction. Only meaningful
	// with the file store driver.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Debounce coalesces bursts of file events, e.g. "500ms".
	Debounce string `yaml:"debounce" json:"debounce"`
}

// TelemetryConfig configures local search telemetry.
type TelemetryConfig struct {
	Enabled             bool `yaml:"enabled" json:"enabled"`
	TopTermsCapacity    int  `yaml:"top_terms_capacity" json:"top_terms_capacity"`
	ZeroResultsCapacity int  `yaml:"zero_results_capacity" json:"zero_results_capacity"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Store: StoreConfig{
			Driver: DriverSQLite,
			Path:   defaultStorePath(),
		},
		Search: SearchConfig{
			TitleWeight:      10,
			ContentWeight:    5,
			KeywordWeight:    3,
			TechnologyWeight: 2,
			DefaultLimit:     10,
			MaxLimit:         100,
		},
		Server: ServerConfig{
			Transport: "stdio",
			LogLevel:  "info",
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: "500ms",
		},
		Telemetry: TelemetryConfig{
			Enabled:             true,
			TopTermsCapacity:    100,
			ZeroResultsCapacity: 100,
		},
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "showmcp.db"
	}
	return filepath.Join(home, ".showmcp", "projects.db")
}

// GetUserConfigPath returns the user config file path.
func GetUserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "showmcp", "config.yaml")
}

// Load builds the effective configuration for a working directory.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.loadUserConfig(); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadUserConfig() error {
	path := GetUserConfigPath()
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return c.mergeYAML(data, path)
}

// loadFromFile loads .showmcp.yaml or .showmcp.yml from dir, if present.
func (c *Config) loadFromFile(dir string) error {
	for _, name := range []string{".showmcp.yaml", ".showmcp.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return c.loadYAML(path)
		}
	}
	// No config file is fine, defaults apply.
	return nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return c.mergeYAML(data, path)
}

// boolOverlay captures which boolean keys a YAML file actually sets.
// A plain bool cannot distinguish "enabled: false" from absent, so the
// file is decoded a second time into pointer fields.
type boolOverlay struct {
	Watch struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"watch"`
	Telemetry struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"telemetry"`
}

func (c *Config) mergeYAML(data []byte, path string) error {
	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	var present boolOverlay
	if err := yaml.Unmarshal(data, &present); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed, &present)
	return nil
}

// mergeWith merges non-zero values from other into c. Booleans merge by
// presence in the overlay rather than by value.
func (c *Config) mergeWith(other *Config, present *boolOverlay) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Store.Driver != "" {
		c.Store.Driver = other.Store.Driver
	}
	if other.Store.Path != "" {
		c.Store.Path = other.Store.Path
	}

	if other.Search.TitleWeight != 0 {
		c.Search.TitleWeight = other.Search.TitleWeight
	}
	if other.Search.ContentWeight != 0 {
		c.Search.ContentWeight = other.Search.ContentWeight
	}
	if other.Search.KeywordWeight != 0 {
		c.Search.KeywordWeight = other.Search.KeywordWeight
	}
	if other.Search.TechnologyWeight != 0 {
		c.Search.TechnologyWeight = other.Search.TechnologyWeight
	}
	if other.Search.DefaultLimit != 0 {
		c.Search.DefaultLimit = other.Search.DefaultLimit
	}
	if other.Search.MaxLimit != 0 {
		c.Search.MaxLimit = other.Search.MaxLimit
	}

	if other.Server.Transport != "" {
		c.Server.Transport = other.Server.Transport
	}
	if other.Server.LogLevel != "" {
		c.Server.LogLevel = other.Server.LogLevel
	}

	if present.Watch.Enabled != nil {
		c.Watch.Enabled = *present.Watch.Enabled
	}
	if other.Watch.Debounce != "" {
		c.Watch.Debounce = other.Watch.Debounce
	}

	if present.Telemetry.Enabled != nil {
		c.Telemetry.Enabled = *present.Telemetry.Enabled
	}
	if other.Telemetry.TopTermsCapacity != 0 {
		c.Telemetry.TopTermsCapacity = other.Telemetry.TopTermsCapacity
	}
	if other.Telemetry.ZeroResultsCapacity != 0 {
		c.Telemetry.ZeroResultsCapacity = other.Telemetry.ZeroResultsCapacity
	}
}

// applyEnvOverrides applies SHOWMCP_* environment variables, the highest
// precedence layer.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SHOWMCP_STORE_DRIVER"); v != "" {
		c.Store.Driver = StoreDriver(strings.ToLower(v))
	}
	if v := os.Getenv("SHOWMCP_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("SHOWMCP_LOG_LEVEL"); v != "" {
		c.Server.LogLevel = v
	}
	if v := os.Getenv("SHOWMCP_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.MaxLimit = n
		}
	}
	if v := os.Getenv("SHOWMCP_TELEMETRY"); v != "" {
		c.Telemetry.Enabled = strings.ToLower(v) == "true" || v == "1"
	}
}

// Validate checks the final configuration for consistency.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverFile, DriverMemory:
	default:
		return fmt.Errorf("store.driver must be 'sqlite', 'file', or 'memory', got %s", c.Store.Driver)
	}
	if c.Store.Driver != DriverMemory && c.Store.Path == "" {
		return fmt.Errorf("store.path is required for driver %s", c.Store.Driver)
	}

	for name, w := range map[string]float64{
		"title_weight":      c.Search.TitleWeight,
		"content_weight":    c.Search.ContentWeight,
		"keyword_weight":    c.Search.KeywordWeight,
		"technology_weight": c.Search.TechnologyWeight,
	} {
		if w < 0 {
			return fmt.Errorf("search.%s must be non-negative, got %f", name, w)
		}
	}
	if c.Search.DefaultLimit < 0 {
		return fmt.Errorf("search.default_limit must be non-negative, got %d", c.Search.DefaultLimit)
	}
	if c.Search.MaxLimit < 0 {
		return fmt.Errorf("search.max_limit must be non-negative, got %d", c.Search.MaxLimit)
	}
	if c.Search.MaxLimit > 0 && c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf("search.default_limit %d exceeds max_limit %d", c.Search.DefaultLimit, c.Search.MaxLimit)
	}

	if strings.ToLower(c.Server.Transport) != "stdio" {
		return fmt.Errorf("server.transport must be 'stdio', got %s", c.Server.Transport)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Server.LogLevel)] {
		return fmt.Errorf("server.log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.Server.LogLevel)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
