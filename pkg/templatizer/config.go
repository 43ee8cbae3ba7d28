package templatizer

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// DefaultMarker is the placeholder character used when none is configured.
const DefaultMarker = '@'

// Config contains all configuration options for the templatizer engine
type Config struct {
	// MaxIncludeDepth bounds the length of an include chain.
	MaxIncludeDepth int
	// RootTag, when set, is the required name of the wrapper element.
	RootTag string
	// Marker is the placeholder character in text and attribute values.
	Marker rune
	// RawFiller writes filler text without escaping it.
	RawFiller bool
	// CacheMaxSize is the maximum number of compiled templates to cache. 0 disables caching.
	CacheMaxSize int
	// CacheTTL is the time-to-live for cached templates. 0 means no expiration.
	CacheTTL time.Duration
	// LogLevel controls the verbosity of logging (trace, debug, info, warn, error, off)
	LogLevel string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxIncludeDepth: 32,
		Marker:          DefaultMarker,
		CacheMaxSize:    100,
		LogLevel:        "info",
	}
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()
	if overrides == nil {
		return defaults
	}

	config := *overrides
	if config.MaxIncludeDepth == 0 {
		config.MaxIncludeDepth = defaults.MaxIncludeDepth
	}
	if config.Marker == 0 {
		config.Marker = defaults.Marker
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	return &config
}

// Validate checks if the configuration is valid and reports every problem found
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.MaxIncludeDepth <= 0 {
		result = multierror.Append(result, errors.New("max include depth must be positive"))
	}
	if c.Marker == 0 || c.Marker == utf8.RuneError {
		result = multierror.Append(result, errors.New("marker must be a valid character"))
	}
	if strings.ContainsRune("<>&\"'", c.Marker) || c.Marker == ' ' {
		result = multierror.Append(result, fmt.Errorf("marker %q is reserved by the markup syntax", c.Marker))
	}
	if c.CacheMaxSize < 0 {
		result = multierror.Append(result, errors.New("cache max size cannot be negative"))
	}
	if c.CacheTTL < 0 {
		result = multierror.Append(result, errors.New("cache TTL cannot be negative"))
	}
	if _, ok := parseLogLevel(c.LogLevel); !ok {
		result = multierror.Append(result, errors.New("invalid log level: "+c.LogLevel))
	}

	return result.ErrorOrNil()
}

// fileConfig is the YAML form of Config. Unset keys keep their defaults.
type fileConfig struct {
	MaxIncludeDepth *int           `yaml:"max_include_depth"`
	RootTag         *string        `yaml:"root_tag"`
	Marker          *string        `yaml:"marker"`
	RawFiller       *bool          `yaml:"raw_filler"`
	CacheMaxSize    *int           `yaml:"cache_max_size"`
	CacheTTL        *time.Duration `yaml:"cache_ttl"`
	LogLevel        *string        `yaml:"log_level"`
}

// LoadConfigFile reads a YAML configuration file. Keys that are absent keep
// the values of DefaultConfig. The result is validated.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read config", Path: path, Cause: err}
	}
	return ParseConfig(data, path)
}

// ParseConfig decodes YAML configuration data. name is used in errors.
func ParseConfig(data []byte, name string) (*Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, &ParseError{Path: name, Message: err.Error()}
	}

	config := DefaultConfig()
	if fc.MaxIncludeDepth != nil {
		config.MaxIncludeDepth = *fc.MaxIncludeDepth
	}
	if fc.RootTag != nil {
		config.RootTag = *fc.RootTag
	}
	if fc.Marker != nil {
		r, size := utf8.DecodeRuneInString(*fc.Marker)
		if size == 0 || size != len(*fc.Marker) {
			return nil, &ParseError{Path: name, Message: fmt.Sprintf("marker must be a single character, got %q", *fc.Marker)}
		}
		config.Marker = r
	}
	if fc.RawFiller != nil {
		config.RawFiller = *fc.RawFiller
	}
	if fc.CacheMaxSize != nil {
		config.CacheMaxSize = *fc.CacheMaxSize
	}
	if fc.CacheTTL != nil {
		config.CacheTTL = *fc.CacheTTL
	}
	if fc.LogLevel != nil {
		config.LogLevel = *fc.LogLevel
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in '%s': %w", name, err)
	}
	return config, nil
}
