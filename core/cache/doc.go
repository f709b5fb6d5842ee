// Package cache provides the TTL cache used to throttle upstream entity
// fetches (players, guilds).
//
// Entries are evicted by a per-insertion timer, so freshness is advisory:
// a Get racing an expiry can observe the value until the exact moment the
// timer fires. Entries are never persisted.
package cache
