package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	return configPath
}

func TestLoad_ValidConfig_Success(t *testing.T) {
	configPath := writeConfig(t, `
project: "acme"
role_arn: "arn:aws:iam::123456789012:role/billing-readonly"
region: "eu-west-1"
cost_type: "UnblendedCost"
scrape_interval: 2
port: 9108
log_level: "debug"
api_timeout: 60
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Project != "acme" {
		t.Errorf("Project = %v, want acme", cfg.Project)
	}
	if cfg.RoleArn != "arn:aws:iam::123456789012:role/billing-readonly" {
		t.Errorf("RoleArn = %v", cfg.RoleArn)
	}
	if cfg.Region != "eu-west-1" {
		t.Errorf("Region = %v, want eu-west-1", cfg.Region)
	}
	if cfg.CostType != "UnblendedCost" {
		t.Errorf("CostType = %v, want UnblendedCost", cfg.CostType)
	}
	if cfg.Port != 9108 {
		t.Errorf("Port = %v, want 9108", cfg.Port)
	}
	if cfg.ScrapeIntervalSeconds() != 2*86400 {
		t.Errorf("ScrapeIntervalSeconds() = %v, want %v", cfg.ScrapeIntervalSeconds(), 2*86400)
	}
	if cfg.APITimeout != 60 {
		t.Errorf("APITimeout = %v, want 60", cfg.APITimeout)
	}
}

func TestLoad_ApplyDefaults_Success(t *testing.T) {
	configPath := writeConfig(t, `
project: "acme"
role_arn: "arn:aws:iam::123456789012:role/billing-readonly"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Port", cfg.Port, 4298},
		{"Region", cfg.Region, "us-east-1"},
		{"CostType", cfg.CostType, "AmortizedCost"},
		{"ScrapeInterval", cfg.ScrapeInterval, 1},
		{"ScrapeIntervalSeconds", cfg.ScrapeIntervalSeconds(), 86400},
		{"LogLevel", cfg.LogLevel, "info"},
		{"APITimeout", cfg.APITimeout, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_DefaultFilter_ExcludesCreditsAndRefunds(t *testing.T) {
	configPath := writeConfig(t, `
project: "acme"
role_arn: "arn:aws:iam::123456789012:role/billing-readonly"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.CostFilter == nil || cfg.CostFilter.Not == nil || cfg.CostFilter.Not.Dimensions == nil {
		t.Fatal("default filter should be a Not(Dimensions) expression")
	}

	dims := cfg.CostFilter.Not.Dimensions
	if dims.Key != "RECORD_TYPE" {
		t.Errorf("filter Key = %v, want RECORD_TYPE", dims.Key)
	}

	want := []string{"Credit", "Refund", "Enterprise Discount Program Discount"}
	if len(dims.Values) != len(want) {
		t.Fatalf("filter Values = %v, want %v", dims.Values, want)
	}
	for i := range want {
		if dims.Values[i] != want[i] {
			t.Errorf("filter Values[%d] = %v, want %v", i, dims.Values[i], want[i])
		}
	}
}

func TestLoad_CustomFilter_Success(t *testing.T) {
	configPath := writeConfig(t, `
project: "acme"
role_arn: "arn:aws:iam::123456789012:role/billing-readonly"
filter: '{"Dimensions": {"Key": "SERVICE", "Values": ["Amazon EC2"]}}'
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.CostFilter == nil || cfg.CostFilter.Dimensions == nil {
		t.Fatal("expected parsed Dimensions filter")
	}
	if cfg.CostFilter.Dimensions.Key != "SERVICE" {
		t.Errorf("filter Key = %v, want SERVICE", cfg.CostFilter.Dimensions.Key)
	}
}

func TestLoad_MalformedFilter_Error(t *testing.T) {
	configPath := writeConfig(t, `
project: "acme"
role_arn: "arn:aws:iam::123456789012:role/billing-readonly"
filter: '{"Not": '
`)

	if _, err := Load(configPath); err == nil {
		t.Error("Load() error = nil, want error for malformed filter JSON")
	}
}

func TestLoad_RequiredFields_Error(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing project",
			content: `role_arn: "arn:aws:iam::123456789012:role/billing-readonly"`,
			wantErr: "project is required",
		},
		{
			name:    "missing role_arn",
			content: `project: "acme"`,
			wantErr: "role_arn is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeConfig(t, tt.content)

			_, err := Load(configPath)
			if err == nil {
				t.Fatalf("Load() error = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverrides_Success(t *testing.T) {
	configPath := writeConfig(t, `
project: "acme"
role_arn: "arn:aws:iam::123456789012:role/billing-readonly"
port: 4298
`)

	t.Setenv("AWS_COST_PROJECT", "acme-staging")
	t.Setenv("AWS_COST_REGION", "eu-central-1")
	t.Setenv("AWS_COST_PORT", "9999")
	t.Setenv("AWS_COST_TYPE", "NetAmortizedCost")
	t.Setenv("AWS_COST_SCRAPE_INTERVAL", "3")
	t.Setenv("AWS_COST_LOG_LEVEL", "warn")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Project != "acme-staging" {
		t.Errorf("Project = %v, want acme-staging (env override)", cfg.Project)
	}
	if cfg.Region != "eu-central-1" {
		t.Errorf("Region = %v, want eu-central-1 (env override)", cfg.Region)
	}
	if cfg.Port != 9999 {
		t.Errorf("Port = %v, want 9999 (env override)", cfg.Port)
	}
	if cfg.CostType != "NetAmortizedCost" {
		t.Errorf("CostType = %v, want NetAmortizedCost (env override)", cfg.CostType)
	}
	if cfg.ScrapeInterval != 3 {
		t.Errorf("ScrapeInterval = %v, want 3 (env override)", cfg.ScrapeInterval)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn (env override)", cfg.LogLevel)
	}
}

func TestLoad_InvalidEnvInteger_Error(t *testing.T) {
	configPath := writeConfig(t, `
project: "acme"
role_arn: "arn:aws:iam::123456789012:role/billing-readonly"
`)

	t.Setenv("AWS_COST_PORT", "not-a-port")

	if _, err := Load(configPath); err == nil {
		t.Error("Load() error = nil, want error for non-integer AWS_COST_PORT")
	}
}

func TestValidate_InvalidValues_Error(t *testing.T) {
	base := func() *Config {
		return &Config{
			Project:        "acme",
			RoleArn:        "arn:aws:iam::123456789012:role/x",
			Region:         "us-east-1",
			CostType:       "AmortizedCost",
			ScrapeInterval: 1,
			Port:           4298,
			APITimeout:     30,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too low", func(c *Config) { c.Port = 0 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"negative scrape interval", func(c *Config) { c.ScrapeInterval = -1 }},
		{"unknown cost type", func(c *Config) { c.CostType = "ActualCost" }},
		{"zero api timeout", func(c *Config) { c.APITimeout = 0 }},
		{"excessive api timeout", func(c *Config) { c.APITimeout = 900 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			if err := validate(cfg); err == nil {
				t.Errorf("validate() error = nil, want error")
			}
		})
	}
}

func TestLoad_MissingFile_Error(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() error = nil, want error for missing file")
	}
}

func TestLoad_MalformedYAML_Error(t *testing.T) {
	configPath := writeConfig(t, `
project: "acme"
  role_arn: [[[
`)

	if _, err := Load(configPath); err == nil {
		t.Error("Load() error = nil, want error for malformed YAML")
	}
}
