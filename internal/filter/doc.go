// Package filter models the Cost Explorer boolean filter expression.
//
// Filters are configured as JSON using the Cost Explorer wire format
// (Dimensions / Not / And / Or nodes). This package parses that JSON into
// a typed expression tree, validates its shape once at configuration load
// time, and converts it to the SDK request type when building queries.
// The exporter never interprets the filter beyond that: whatever is
// configured is sent to the API verbatim.
//
// The default filter excludes RECORD_TYPE values Credit, Refund, and
// Enterprise Discount Program Discount so that daily service costs are
// not offset by account-level adjustments.
package filter
