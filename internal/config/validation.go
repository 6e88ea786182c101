package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	if err := c.Data.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("data: %w", err))
	}

	if err := c.Model.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("model: %w", err))
	}

	for i, r := range c.Rules {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("rules[%d]: %w", i, err))
		}
	}

	if err := c.Sweep.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("sweep: %w", err))
	}

	if err := c.Bootstrap.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("bootstrap: %w", err))
	}

	if err := c.Persistence.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("persistence: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}

func (d *DataConfig) Validate() error {
	for i, f := range d.Files {
		if f == "" {
			return fmt.Errorf("files[%d] cannot be empty", i)
		}
	}
	return nil
}

func (m *ModelConfig) Validate() error {
	var errs []error

	if m.BatchFactor <= 0 {
		errs = append(errs, fmt.Errorf("batch_factor must be positive, got %v", m.BatchFactor))
	}

	if m.PositiveRange.Max <= m.PositiveRange.Min {
		errs = append(errs, fmt.Errorf("positive_range.max_delta (%v) must be greater than min_delta (%v)",
			m.PositiveRange.Max, m.PositiveRange.Min))
	}

	return errors.Join(errs...)
}

func (s *SweepConfig) Validate() error {
	var errs []error

	if err := s.Thresholds.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("thresholds: %w", err))
	}

	if err := s.BatchFactors.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("batch_factors: %w", err))
	} else if s.BatchFactors.Start < 1 {
		errs = append(errs, fmt.Errorf("batch_factors.start must be at least 1, got %d", s.BatchFactors.Start))
	}

	if s.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be non-negative, got %d", s.Workers))
	}

	return errors.Join(errs...)
}

func (b *BootstrapConfig) Validate() error {
	if b.ConfidenceLevel <= 0 || b.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidence_level must be between 0 and 1, got %v", b.ConfidenceLevel)
	}
	if b.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1")
	}
	return nil
}

func (p *PersistenceConfig) Validate() error {
	if p.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", l.Level)
	}

	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validFormats[l.Format] {
		return fmt.Errorf("invalid log format: %s (valid: json, text)", l.Format)
	}

	return nil
}
