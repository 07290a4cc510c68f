package version

import (
	"fmt"
	"runtime"
)

// Build information. Populated at build time via ldflags, for example:
//
//	go build -ldflags "-X github.com/zgpcy/aws-cost-exporter/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String returns a human-readable build description for startup logs
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}

// Info returns the build information as label values for the build_info metric
func Info() map[string]string {
	return map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
	}
}
