// Package aws provides the Cost Explorer client and credential broker.
//
// This package contains everything that talks to AWS:
//   - Broker: assumes the cross-account billing role via STS and caches
//     the resulting temporary session, re-assuming it near expiry
//   - Client: queries GetCostAndUsage for the previous full UTC day,
//     grouped by service, filtered by the configured expression
//   - Aggregate: reduces the grouped response to a per-service cost map
//     and an unrounded daily total
//
// The error sentinels ErrAuthorization, ErrQuery, and ErrDataFormat
// classify failures: authorization failures abort startup, the other two
// are contained within a single collection cycle (the scrape that
// triggered them simply yields no cost samples).
//
// Example usage:
//
//	broker, err := aws.NewBroker(ctx, cfg, log)
//	if err != nil {
//		log.Error("AWS configuration failed", "error", err)
//		os.Exit(1)
//	}
//	if _, err := broker.Assume(ctx); err != nil {
//		log.Error("Role assumption failed", "error", err)
//		os.Exit(1)
//	}
//
//	client := aws.NewClient(broker, cfg, log)
//	report, err := client.DailyCosts(ctx, window.Compute(time.Now()))
package aws
