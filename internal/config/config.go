package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/ukaji3/leadmerge-go/pkg/leadmerge"
)

//go:embed sample_config.toml
var sampleConfig string

// References locates the CRM exports used for owner lookup.
type References struct {
	Accounts string `toml:"accounts"`
	Users    string `toml:"users"`
}

// Filter controls which merged rows are kept.
type Filter struct {
	MinScore     int    `toml:"min_score"`
	ExcludeZIP   string `toml:"exclude_zip"`
	DedupeColumn string `toml:"dedupe_column"`
}

// Input controls how the export workbook is read.
type Input struct {
	DropColumns     []string `toml:"drop_columns"`
	StrictAlignment bool     `toml:"strict_alignment"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"` // auto, console, json
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for leadmerge.
type Config struct {
	References References `toml:"references"`
	Filter     Filter     `toml:"filter"`
	Input      Input      `toml:"input"`
	Logging    Logging    `toml:"logging"`
}

// SampleConfig returns a commented configuration file with the defaults.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. An empty path
// means leadmerge.toml in the working directory. A missing file is not an
// error: the defaults are returned with exists set to false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// MergeOptions converts the configuration to merge options.
func (c *Config) MergeOptions() leadmerge.Options {
	return leadmerge.Options{
		MinScore:        c.Filter.MinScore,
		DropColumns:     append([]string(nil), c.Input.DropColumns...),
		DedupeColumn:    c.Filter.DedupeColumn,
		ExcludeZIP:      c.Filter.ExcludeZIP,
		StrictAlignment: c.Input.StrictAlignment,
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = defaultConfigFile
	}

	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}

	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

func (c *Config) normalize() error {
	var err error
	if c.References.Accounts, err = expandPath(strings.TrimSpace(c.References.Accounts)); err != nil {
		return fmt.Errorf("references.accounts: %w", err)
	}
	if c.References.Users, err = expandPath(strings.TrimSpace(c.References.Users)); err != nil {
		return fmt.Errorf("references.users: %w", err)
	}

	c.Filter.ExcludeZIP = strings.TrimSpace(c.Filter.ExcludeZIP)
	if c.Filter.ExcludeZIP == "" {
		c.Filter.ExcludeZIP = leadmerge.ExcludedZIP
	}

	c.Filter.DedupeColumn = strings.TrimSpace(c.Filter.DedupeColumn)
	if c.Filter.DedupeColumn == "" {
		c.Filter.DedupeColumn = leadmerge.ColMessage
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
