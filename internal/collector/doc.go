// Package collector implements a Prometheus collector for AWS cost metrics.
//
// This package bridges the Cost Explorer query client and the Prometheus
// exposition surface. It implements the prometheus.Collector interface with
// pull-driven semantics: every scrape of /metrics triggers one cost query
// for the previous full UTC day, and the scrape's samples come straight
// from that query's result. There is no background refresh and no cache;
// the scrape cadence of the polling agent is the collection cadence.
//
// The collector exposes the following metrics:
//   - aws_cost: Daily cost per service (type="individual_service") plus the
//     unrounded daily total (type="daily_total"), labeled by project
//   - up: Whether the collection behind this scrape succeeded, with project label
//   - aws_cost_exporter_collect_duration_seconds: Duration of this scrape's collection
//   - aws_cost_exporter_collect_errors_total: Total number of failed collections
//   - aws_cost_exporter_last_collection_timestamp_seconds: Unix timestamp of the
//     last successful collection
//   - aws_cost_exporter_services_count: Service count of the last successful collection
//   - aws_cost_exporter_build_info: Build version information
//
// A failed collection produces a scrape with no aws_cost samples, up=0, and
// an incremented error counter; the process keeps serving and the next
// scrape queries again.
//
// Example usage:
//
//	client := aws.NewClient(broker, cfg, log)
//	costCollector := collector.NewCostCollector(client, cfg, log)
//
//	// Register with Prometheus
//	prometheus.MustRegister(costCollector)
//
//	// Check readiness
//	if costCollector.IsReady() {
//		fmt.Println("At least one collection has succeeded")
//	}
package collector
