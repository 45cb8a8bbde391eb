// Package config loads and validates CLI configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-bn2html/internal/fileutil"
	"github.com/alnah/go-bn2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits so a hostile config cannot balloon the output.
const (
	MaxTitleLength    = 200  // document title
	MaxTOCTitleLength = 100  // TOC heading
	MaxStyleLength    = 50   // chroma style name
	MaxPathLength     = 2048 // file paths
	MaxWorkers        = 64
	MaxChunkSize      = 1 << 20 // lines
)

// Config holds all configuration for document conversion.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	Convert  ConvertConfig  `yaml:"convert"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// DocumentConfig defines per-document rendering options.
type DocumentConfig struct {
	Title       string `yaml:"title"`       // Empty = derive from file name
	TOCTitle    string `yaml:"tocTitle"`    // Heading above generated TOCs
	SyntaxStyle string `yaml:"syntaxStyle"` // chroma style for code blocks
	CSSFile     string `yaml:"cssFile"`     // Extra CSS: built-in theme name or file path
	Minify      bool   `yaml:"minify"`
	Diagnostics bool   `yaml:"diagnostics"` // Append a diagnostics summary section
}

// ConvertConfig defines pipeline tuning options.
type ConvertConfig struct {
	Workers   int    `yaml:"workers"`   // 0 = auto from GOMAXPROCS
	ChunkSize int    `yaml:"chunkSize"` // 0 = built-in default
	Timeout   string `yaml:"timeout"`   // Go duration, e.g. "30s", "2m"
	CacheTTL  string `yaml:"cacheTTL"`  // Go duration; "0" disables the cache
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.tocTitle", c.Document.TOCTitle, MaxTOCTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.syntaxStyle", c.Document.SyntaxStyle, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.cssFile", c.Document.CSSFile, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if c.Convert.Workers < 0 || c.Convert.Workers > MaxWorkers {
		return fmt.Errorf("%w: convert.workers must be between 0 and %d, got %d",
			ErrInvalidField, MaxWorkers, c.Convert.Workers)
	}
	if c.Convert.ChunkSize < 0 || c.Convert.ChunkSize > MaxChunkSize {
		return fmt.Errorf("%w: convert.chunkSize must be between 0 and %d, got %d",
			ErrInvalidField, MaxChunkSize, c.Convert.ChunkSize)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{
			TOCTitle:    "Contents",
			SyntaxStyle: "github",
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found (no silent
// fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to a YAML file, creating parent
// directories as needed. Used by the CLI's config bootstrap.
func (c *Config) Save(path string) error {
	data, err := yamlutil.Marshal(c)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, then the user config dir
// under go-bn2html/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-bn2html", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: %s (tried: %s)", ErrConfigNotFound, name, strings.Join(triedPaths, ", "))
}
