// Package guild resolves and serves guild records.
//
// A guild is looked up through one of its members' ally codes: the player
// record names the guild id, the guild record carries the roster. Roster
// expansion fetches every member's player record through the bounded
// worker pool and tolerates individual member failures, because one
// upstream hiccup must not fail a fifty-member fetch.
//
// A player without a guild is a not-found outcome, distinct from upstream
// failures.
package guild
