package collector

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zgpcy/aws-cost-exporter/internal/clock"
	"github.com/zgpcy/aws-cost-exporter/internal/config"
	"github.com/zgpcy/aws-cost-exporter/internal/cost"
	"github.com/zgpcy/aws-cost-exporter/internal/logger"
	"github.com/zgpcy/aws-cost-exporter/internal/version"
	"github.com/zgpcy/aws-cost-exporter/internal/window"
)

// Label values for the type dimension of the cost metric
const (
	TypeIndividualService = "individual_service"
	TypeDailyTotal        = "daily_total"
)

// CostCollector implements prometheus.Collector for AWS cost metrics.
// Each scrape of /metrics drives a fresh Cost Explorer query for the
// previous full UTC day; nothing is cached between scrapes, so the data
// is as fresh as the query the scrape triggered. A failed query yields a
// scrape with no cost samples rather than stale values.
type CostCollector struct {
	source cost.Source
	cfg    *config.Config
	logger *logger.Logger
	clock  clock.Clock // Time provider for testing

	// Metrics
	costMetric               *prometheus.Desc
	upMetric                 *prometheus.Desc
	collectDurationMetric    *prometheus.Desc
	collectErrorsTotal       *prometheus.CounterVec
	lastCollectionTimeMetric *prometheus.Desc
	servicesCountMetric      *prometheus.Desc
	buildInfo                *prometheus.GaugeVec

	// State
	mu               sync.RWMutex
	lastError        error
	lastCollection   time.Time
	lastServiceCount int
	isReady          bool
}

// NewCostCollector creates a new CostCollector
func NewCostCollector(source cost.Source, cfg *config.Config, log *logger.Logger) *CostCollector {
	collectErrorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aws_cost_exporter_collect_errors_total",
			Help: "Total number of failed cost collections since startup",
		},
		[]string{"project"},
	)

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "aws_cost_exporter_build_info",
			Help: "Build version information",
		},
		[]string{"version", "git_commit", "build_date", "go_version"},
	)

	versionInfo := version.Info()
	buildInfo.With(prometheus.Labels{
		"version":    versionInfo["version"],
		"git_commit": versionInfo["git_commit"],
		"build_date": versionInfo["build_date"],
		"go_version": versionInfo["go_version"],
	}).Set(1)

	return &CostCollector{
		source: source,
		cfg:    cfg,
		logger: log,
		clock:  clock.RealClock{}, // Use real system time by default
		costMetric: prometheus.NewDesc(
			"aws_cost",
			"Daily AWS cost for the previous full UTC day. Per-service samples carry the integer cost; the daily_total sample carries the unrounded sum.",
			[]string{"project", "service", "type"},
			nil,
		),
		upMetric: prometheus.NewDesc(
			"up",
			"Was the last cost query successful (1 = success, 0 = failure)",
			[]string{"project"},
			nil,
		),
		collectDurationMetric: prometheus.NewDesc(
			"aws_cost_exporter_collect_duration_seconds",
			"Duration of the cost collection triggered by this scrape in seconds",
			[]string{"project"},
			nil,
		),
		collectErrorsTotal: collectErrorsTotal,
		lastCollectionTimeMetric: prometheus.NewDesc(
			"aws_cost_exporter_last_collection_timestamp_seconds",
			"Unix timestamp of the last successful collection",
			[]string{"project"},
			nil,
		),
		servicesCountMetric: prometheus.NewDesc(
			"aws_cost_exporter_services_count",
			"Number of services in the last successful collection",
			[]string{"project"},
			nil,
		),
		buildInfo: buildInfo,
	}
}

// Describe implements prometheus.Collector
func (c *CostCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.costMetric
	ch <- c.upMetric
	ch <- c.collectDurationMetric
	c.collectErrorsTotal.Describe(ch)
	ch <- c.lastCollectionTimeMetric
	ch <- c.servicesCountMetric
	c.buildInfo.Describe(ch)
}

// Collect implements prometheus.Collector. It queries Cost Explorer for
// the window ending at the current UTC midnight and emits one sample per
// service plus the daily total. On failure it emits the operational
// metrics only: the scrape succeeds with zero cost samples and the
// process keeps serving.
func (c *CostCollector) Collect(ch chan<- prometheus.Metric) {
	w := window.Compute(c.clock.Now())

	start := time.Now()
	report, err := c.source.DailyCosts(context.Background(), w)
	duration := time.Since(start)

	c.mu.Lock()
	c.lastError = err
	if err == nil {
		c.lastCollection = c.clock.Now()
		c.lastServiceCount = len(report.Services)
		c.isReady = true
	}
	lastCollection := c.lastCollection
	serviceCount := c.lastServiceCount
	c.mu.Unlock()

	if err != nil {
		c.collectErrorsTotal.With(prometheus.Labels{"project": c.cfg.Project}).Inc()
		c.logger.Error("Cost collection failed",
			"project", c.cfg.Project,
			"start_date", w.StartDate(),
			"end_date", w.EndDate(),
			"error", err)
	} else {
		for service, amount := range report.Services {
			ch <- prometheus.MustNewConstMetric(
				c.costMetric,
				prometheus.GaugeValue,
				float64(amount),
				c.cfg.Project,
				service,
				TypeIndividualService,
			)
		}
		ch <- prometheus.MustNewConstMetric(
			c.costMetric,
			prometheus.GaugeValue,
			report.Total,
			c.cfg.Project,
			"",
			TypeDailyTotal,
		)
	}

	upValue := 0.0
	if err == nil {
		upValue = 1.0
	}
	ch <- prometheus.MustNewConstMetric(
		c.upMetric,
		prometheus.GaugeValue,
		upValue,
		c.cfg.Project,
	)

	ch <- prometheus.MustNewConstMetric(
		c.collectDurationMetric,
		prometheus.GaugeValue,
		duration.Seconds(),
		c.cfg.Project,
	)

	c.collectErrorsTotal.Collect(ch)

	if !lastCollection.IsZero() {
		ch <- prometheus.MustNewConstMetric(
			c.lastCollectionTimeMetric,
			prometheus.GaugeValue,
			float64(lastCollection.Unix()),
			c.cfg.Project,
		)
	}

	ch <- prometheus.MustNewConstMetric(
		c.servicesCountMetric,
		prometheus.GaugeValue,
		float64(serviceCount),
		c.cfg.Project,
	)

	c.buildInfo.Collect(ch)
}

// IsReady returns true once at least one collection has succeeded
func (c *CostCollector) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isReady
}

// LastError returns the error of the most recent collection attempt
func (c *CostCollector) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// LastCollectionTime returns the time of the last successful collection
func (c *CostCollector) LastCollectionTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastCollection
}

// ServiceCount returns the service count of the last successful collection
func (c *CostCollector) ServiceCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastServiceCount
}
