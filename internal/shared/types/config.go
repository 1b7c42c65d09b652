package types

import (
	"fmt"
	"time"
)

const (
	DefaultCPUThreshold         = 10.0
	DefaultIOPSThreshold        = 10.0
	DefaultLookbackDays         = 31
	DefaultPeriodSeconds        = 86400
	DefaultMaxConcurrentQueries = 8
	DefaultSubject              = "Idle AWS Resources Notification"
)

// Config represents the scan configuration. It can be loaded from a file or
// from the environment and is passed explicitly to the use case.
// IOPSThreshold is carried for EBS I/O based detection; no rule reads it yet.
type Config struct {
	TopicARN             string   `json:"topic_arn" yaml:"topic_arn" toml:"topic_arn" mapstructure:"topic_arn"`
	Subject              string   `json:"subject" yaml:"subject" toml:"subject" mapstructure:"subject"`
	CPUThreshold         float64  `json:"cpu_threshold" yaml:"cpu_threshold" toml:"cpu_threshold" mapstructure:"cpu_threshold"`
	IOPSThreshold        float64  `json:"iops_threshold" yaml:"iops_threshold" toml:"iops_threshold" mapstructure:"iops_threshold"`
	LookbackDays         int      `json:"lookback_days" yaml:"lookback_days" toml:"lookback_days" mapstructure:"lookback_days"`
	PeriodSeconds        int      `json:"period_seconds" yaml:"period_seconds" toml:"period_seconds" mapstructure:"period_seconds"`
	Regions              []string `json:"regions" yaml:"regions" toml:"regions" mapstructure:"regions"`
	Profile              string   `json:"profile" yaml:"profile" toml:"profile" mapstructure:"profile"`
	MaxConcurrentQueries int      `json:"max_concurrent_queries" yaml:"max_concurrent_queries" toml:"max_concurrent_queries" mapstructure:"max_concurrent_queries"`
	DryRun               bool     `json:"dry_run" yaml:"dry_run" toml:"dry_run" mapstructure:"dry_run"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Subject:              DefaultSubject,
		CPUThreshold:         DefaultCPUThreshold,
		IOPSThreshold:        DefaultIOPSThreshold,
		LookbackDays:         DefaultLookbackDays,
		PeriodSeconds:        DefaultPeriodSeconds,
		MaxConcurrentQueries: DefaultMaxConcurrentQueries,
	}
}

// WithDefaults fills zero values from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Subject == "" {
		c.Subject = d.Subject
	}
	if c.CPUThreshold == 0 {
		c.CPUThreshold = d.CPUThreshold
	}
	if c.IOPSThreshold == 0 {
		c.IOPSThreshold = d.IOPSThreshold
	}
	if c.LookbackDays == 0 {
		c.LookbackDays = d.LookbackDays
	}
	if c.PeriodSeconds == 0 {
		c.PeriodSeconds = d.PeriodSeconds
	}
	if c.MaxConcurrentQueries == 0 {
		c.MaxConcurrentQueries = d.MaxConcurrentQueries
	}
	return c
}

// Period is the metric aggregation period.
func (c Config) Period() time.Duration {
	return time.Duration(c.PeriodSeconds) * time.Second
}

// Validate reports configuration that would make a scan fail or misbehave.
func (c Config) Validate() error {
	if c.TopicARN == "" && !c.DryRun {
		return ErrMissingTopicARN
	}
	if c.CPUThreshold <= 0 || c.CPUThreshold > 100 {
		return fmt.Errorf("cpu threshold must be in (0, 100], got %v", c.CPUThreshold)
	}
	if c.LookbackDays <= 0 {
		return fmt.Errorf("lookback days must be positive, got %d", c.LookbackDays)
	}
	if c.PeriodSeconds <= 0 || c.PeriodSeconds%60 != 0 {
		return fmt.Errorf("period must be a positive multiple of 60 seconds, got %d", c.PeriodSeconds)
	}
	if (c.LookbackDays*86400)%c.PeriodSeconds != 0 {
		return fmt.Errorf("period of %d seconds does not evenly divide a %d day lookback", c.PeriodSeconds, c.LookbackDays)
	}
	if c.MaxConcurrentQueries <= 0 {
		return fmt.Errorf("max concurrent queries must be positive, got %d", c.MaxConcurrentQueries)
	}
	return nil
}
