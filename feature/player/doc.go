// Package player serves upstream player records by ally code.
//
// Records are cached in memory for the configured TTL so a burst of
// requests for the same player costs one upstream round trip. The cache is
// shared with the guild feature's roster expansion.
package player
