package config

import (
	"errors"
	"fmt"

	"github.com/ukaji3/leadmerge-go/pkg/leadmerge"
	"go.uber.org/zap/zapcore"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.References.Accounts == "" {
		return errors.New("references.accounts must be set")
	}
	if c.References.Users == "" {
		return errors.New("references.users must be set")
	}
	if c.Filter.MinScore < leadmerge.MinThreshold || c.Filter.MinScore > leadmerge.MaxThreshold {
		return fmt.Errorf("filter.min_score must be between %d and %d", leadmerge.MinThreshold, leadmerge.MaxThreshold)
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format must be auto, console, or json (got %q)", c.Logging.Format)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}
