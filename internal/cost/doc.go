// Package cost defines the cost data model and the query abstraction.
//
// The Source interface decouples the Prometheus collector from the Cost
// Explorer client: the collector asks for "daily costs for this window"
// and gets back a Report, without knowing anything about AWS. This keeps
// the collection pipeline testable with a plain mock and keeps the AWS
// dependency contained in one package.
package cost
