package aws

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/zgpcy/aws-cost-exporter/internal/cost"
)

// NormalizeService collapses whitespace in a service name to single
// underscores so it is stable as a label value. Idempotent: a name
// without whitespace passes through unchanged.
func NormalizeService(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

// Aggregate reduces the grouped query response to a per-service cost map
// plus an unrounded total. Each service cost is the ceiling of its raw
// amount (so a -0.4 credit remainder becomes 0, not -1) while the total
// accumulates raw amounts; the sum of the map values therefore need not
// equal the rounded total, and both are exported as-is. A group with an
// unparseable amount fails the whole collection with ErrDataFormat
// rather than exporting a partial day.
func Aggregate(groups []types.Group, costType string) (*cost.Report, error) {
	report := &cost.Report{Services: make(map[string]int64, len(groups))}

	for _, g := range groups {
		if len(g.Keys) == 0 {
			continue
		}
		service := NormalizeService(g.Keys[0])

		metric, ok := g.Metrics[costType]
		if !ok || metric.Amount == nil {
			return nil, fmt.Errorf("%w: group %s has no %s amount", ErrDataFormat, service, costType)
		}

		amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: group %s amount %q: %v",
				ErrDataFormat, service, aws.ToString(metric.Amount), err)
		}

		report.Services[service] = int64(math.Ceil(amount))
		report.Total += amount
	}

	return report, nil
}
