// Package pool provides a bounded-concurrency batch runner for upstream
// fetches.
//
// The concurrency limit caps in-flight requests against the upstream
// service, not threads. Batches are best-effort: one failing guild member
// must not fail the whole guild fetch, so individual failures are tolerated
// as long as at least one item succeeds.
package pool
