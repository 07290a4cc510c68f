package cost

import (
	"context"

	"github.com/zgpcy/aws-cost-exporter/internal/window"
)

// Report is the outcome of a single collection cycle. Services maps
// normalized service names to their rounded-up daily cost; Total is the
// unrounded sum of the raw per-service amounts. Because Services values
// are individually ceiled, their sum is not guaranteed to equal the
// rounded Total; both are exported as-is.
type Report struct {
	Services map[string]int64
	Total    float64
}

// Source produces a fresh daily cost report for the given window. The
// collector calls this on every scrape; implementations must not cache
// results across calls.
type Source interface {
	DailyCosts(ctx context.Context, w window.Window) (*Report, error)
}
