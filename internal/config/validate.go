package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRegistry(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.RegistryDB == "" {
		return errors.New("paths.registry_db must be set")
	}
	if c.Paths.TableDB == "" {
		return errors.New("paths.table_db must be set")
	}
	return nil
}

func (c *Config) validateRegistry() error {
	if c.Registry.Name == "" {
		return errors.New("registry.name must be set")
	}
	if c.Registry.EntityType == "" {
		return errors.New("registry.entity_type must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	switch c.Matching.Strategy {
	case StrategyFuzzy, StrategyExact:
	default:
		return fmt.Errorf("matching.strategy must be %q or %q", StrategyFuzzy, StrategyExact)
	}
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 100 {
		return errors.New("matching.threshold must be between 0 and 100")
	}
	if c.Matching.Workers < 0 {
		return errors.New("matching.workers must not be negative")
	}
	if c.Matching.TypeFilter == "" {
		return errors.New("matching.type_filter must be set")
	}
	if c.Matching.AttributeName == "" {
		return errors.New("matching.attribute_name must be set")
	}
	return nil
}
