package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zgpcy/aws-cost-exporter/internal/filter"
)

// Configuration validation constants
const (
	MinScrapeInterval = 1     // Minimum scrape interval in days
	MinPort           = 1     // Minimum valid port number
	MaxPort           = 65535 // Maximum valid port number
	MaxAPITimeout     = 300   // Maximum Cost Explorer timeout in seconds

	// Default values
	DefaultScrapeInterval = 1 // days
	DefaultPort           = 4298
	DefaultRegion         = "us-east-1"
	DefaultCostType       = "AmortizedCost"
	DefaultLogLevel       = "info"
	DefaultAPITimeout     = 30 // Cost Explorer timeout in seconds
)

// SecondsPerDay converts the scrape_interval config key (days) to the
// seconds value advertised to external pollers.
const SecondsPerDay = 86400

// costTypes are the metric names accepted by the Cost Explorer API.
var costTypes = map[string]bool{
	"AmortizedCost":         true,
	"BlendedCost":           true,
	"NetAmortizedCost":      true,
	"NetUnblendedCost":      true,
	"UnblendedCost":         true,
	"UsageQuantity":         true,
	"NormalizedUsageAmount": true,
}

// Config represents the application configuration. It is loaded once at
// startup and never mutated afterwards.
type Config struct {
	ScrapeInterval int    `yaml:"scrape_interval"` // days; hint for the external scrape cadence
	Port           int    `yaml:"port"`
	Project        string `yaml:"project"`
	RoleArn        string `yaml:"role_arn"`
	Region         string `yaml:"region"`
	CostType       string `yaml:"cost_type"`
	Filter         string `yaml:"filter"` // JSON-encoded Cost Explorer filter expression
	LogLevel       string `yaml:"log_level"`
	APITimeout     int    `yaml:"api_timeout"` // Cost Explorer timeout in seconds

	// CostFilter is the parsed form of Filter, populated by Load.
	CostFilter *filter.Expression `yaml:"-"`
}

// ScrapeIntervalSeconds returns the configured interval in seconds.
func (c *Config) ScrapeIntervalSeconds() int {
	return c.ScrapeInterval * SecondsPerDay
}

// Load loads configuration from a YAML file, applies defaults and
// environment variable overrides, parses the cost filter, and validates
// the result.
func Load(path string) (*Config, error) {
	// #nosec G304 -- Config file path is provided by administrator via CLI flag, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("environment variable error: %w", err)
	}

	if cfg.Filter == "" {
		cfg.CostFilter = filter.Default()
	} else {
		cfg.CostFilter, err = filter.Parse([]byte(cfg.Filter))
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for configuration
func applyDefaults(cfg *Config) {
	if cfg.ScrapeInterval == 0 {
		cfg.ScrapeInterval = DefaultScrapeInterval
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.CostType == "" {
		cfg.CostType = DefaultCostType
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.APITimeout == 0 {
		cfg.APITimeout = DefaultAPITimeout
	}
}

// applyEnvOverrides applies environment variable overrides to configuration
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv("AWS_COST_PROJECT"); val != "" {
		cfg.Project = val
	}

	if val := os.Getenv("AWS_COST_ROLE_ARN"); val != "" {
		cfg.RoleArn = val
	}

	if val := os.Getenv("AWS_COST_REGION"); val != "" {
		cfg.Region = val
	}

	if val := os.Getenv("AWS_COST_TYPE"); val != "" {
		cfg.CostType = val
	}

	if val := os.Getenv("AWS_COST_FILTER"); val != "" {
		cfg.Filter = val
	}

	if val := os.Getenv("AWS_COST_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}

	if val := os.Getenv("AWS_COST_PORT"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid AWS_COST_PORT: must be an integer, got %q", val)
		}
		cfg.Port = i
	}

	if val := os.Getenv("AWS_COST_SCRAPE_INTERVAL"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid AWS_COST_SCRAPE_INTERVAL: must be an integer, got %q", val)
		}
		cfg.ScrapeInterval = i
	}

	if val := os.Getenv("AWS_COST_API_TIMEOUT"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid AWS_COST_API_TIMEOUT: must be an integer, got %q", val)
		}
		cfg.APITimeout = i
	}

	return nil
}

// validate validates the configuration
func validate(cfg *Config) error {
	if cfg.Project == "" {
		return fmt.Errorf("project is required")
	}

	if cfg.RoleArn == "" {
		return fmt.Errorf("role_arn is required")
	}

	if cfg.ScrapeInterval < MinScrapeInterval {
		return fmt.Errorf("scrape_interval must be at least %d day, got %d", MinScrapeInterval, cfg.ScrapeInterval)
	}

	if cfg.Port < MinPort || cfg.Port > MaxPort {
		return fmt.Errorf("port must be between %d and %d", MinPort, MaxPort)
	}

	if !costTypes[cfg.CostType] {
		return fmt.Errorf("cost_type %q is not a Cost Explorer metric", cfg.CostType)
	}

	if cfg.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive, got %d", cfg.APITimeout)
	}

	if cfg.APITimeout > MaxAPITimeout {
		return fmt.Errorf("api_timeout should not exceed %d seconds, got %d", MaxAPITimeout, cfg.APITimeout)
	}

	return nil
}
