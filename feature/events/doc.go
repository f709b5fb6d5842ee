// Package events serves the upstream in-game event schedule.
//
// The schedule is passed through untouched and cached in memory for the
// configured TTL.
package events
