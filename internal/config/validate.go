package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCleaning(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateHistory()
}

func (c *Config) validateCleaning() error {
	if c.Cleaning.MaxPasses < 1 {
		return errors.New("cleaning.max_passes must be at least 1")
	}
	switch c.Cleaning.Convergence {
	case ConvergenceCount, ConvergenceContent:
		return nil
	default:
		return fmt.Errorf("cleaning.convergence must be %q or %q, got %q", ConvergenceCount, ConvergenceContent, c.Cleaning.Convergence)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}
