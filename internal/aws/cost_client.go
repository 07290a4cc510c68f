package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/zgpcy/aws-cost-exporter/internal/config"
	"github.com/zgpcy/aws-cost-exporter/internal/cost"
	"github.com/zgpcy/aws-cost-exporter/internal/logger"
	"github.com/zgpcy/aws-cost-exporter/internal/window"
)

// serviceDimension is the grouping key for per-service cost breakdown.
const serviceDimension = "SERVICE"

// costExplorerAPI is the Cost Explorer surface the client needs (narrowed for testing)
type costExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// Client queries Cost Explorer for daily per-service costs using the
// broker's delegated session. It implements cost.Source.
type Client struct {
	broker *Broker
	cfg    *config.Config
	logger *logger.Logger

	// newAPI builds a Cost Explorer client for a session; replaced in tests
	newAPI func(Session) costExplorerAPI
}

var _ cost.Source = (*Client)(nil)

// NewClient creates a new Cost Explorer client
func NewClient(broker *Broker, cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		broker: broker,
		cfg:    cfg,
		logger: log,
		newAPI: func(s Session) costExplorerAPI {
			return costexplorer.NewFromConfig(s.Config())
		},
	}
}

// DailyCosts runs a single cost query for the window and aggregates the
// grouped response. All failures, including a session refresh failure,
// surface as ErrQuery or ErrDataFormat: the caller treats them as "no
// data for this scrape" and the next scrape retries naturally.
func (c *Client) DailyCosts(ctx context.Context, w window.Window) (*cost.Report, error) {
	sess, err := c.broker.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.APITimeout)*time.Second)
	defer cancel()

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(w.StartDate()),
			End:   aws.String(w.EndDate()),
		},
		Granularity: types.GranularityDaily,
		Metrics:     []string{c.cfg.CostType},
		Filter:      c.cfg.CostFilter.ToSDK(),
		GroupBy: []types.GroupDefinition{
			{
				Type: types.GroupDefinitionTypeDimension,
				Key:  aws.String(serviceDimension),
			},
		},
	}

	c.logger.Debug("Querying Cost Explorer",
		"start_date", w.StartDate(),
		"end_date", w.EndDate(),
		"cost_type", c.cfg.CostType)

	out, err := c.newAPI(sess).GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: date range %s to %s: %v",
			ErrQuery, w.StartDate(), w.EndDate(), err)
	}

	// A day where every record is filtered out still answers with a
	// result; no results at all is treated the same way.
	if len(out.ResultsByTime) == 0 {
		return &cost.Report{Services: map[string]int64{}}, nil
	}

	report, err := Aggregate(out.ResultsByTime[0].Groups, c.cfg.CostType)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Collected daily costs",
		"start_date", w.StartDate(),
		"end_date", w.EndDate(),
		"services", len(report.Services),
		"total", report.Total)

	return report, nil
}
