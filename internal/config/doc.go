// Package config provides configuration management for the AWS Cost Exporter.
//
// This package handles loading configuration from YAML files, applying
// environment variable overrides, setting defaults, parsing the cost
// filter expression, and validating the result.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// Supported environment variables:
//   - AWS_COST_PROJECT: Project label attached to all cost metrics
//   - AWS_COST_ROLE_ARN: ARN of the cross-account role to assume
//   - AWS_COST_REGION: AWS region for the assumed session
//   - AWS_COST_TYPE: Cost Explorer metric (AmortizedCost, UnblendedCost, ...)
//   - AWS_COST_FILTER: JSON-encoded Cost Explorer filter expression
//   - AWS_COST_PORT: HTTP server port (1-65535)
//   - AWS_COST_SCRAPE_INTERVAL: Scrape interval hint in days
//   - AWS_COST_LOG_LEVEL: Log level (debug, info, warn, error)
//   - AWS_COST_API_TIMEOUT: Cost Explorer request timeout in seconds
//
// project and role_arn are required; everything else has a default. The
// default filter excludes Credit, Refund, and Enterprise Discount Program
// Discount records.
//
// Example configuration file (config.yaml):
//
//	project: "acme"
//	role_arn: "arn:aws:iam::123456789012:role/billing-readonly"
//	region: "us-east-1"
//	cost_type: "AmortizedCost"
//	scrape_interval: 1   # days
//	port: 4298
//	log_level: "info"
//
// Example usage:
//
//	cfg, err := config.Load("config.yaml")
//	if err != nil {
//		log.Fatalf("Failed to load config: %v", err)
//	}
//
//	fmt.Printf("Exporting costs for project %s\n", cfg.Project)
package config
