// Package client talks to the upstream game-data service.
//
// The Client interface covers version metadata, whole or segmented
// game-data fetches, the localization bundle, and the per-entity lookups
// (player, guild, events) used by the request features. It is deliberately
// interface-first so tests can substitute the mock in core/client/mocks.
//
// All failures carry apperr.KindUpstream so the HTTP boundary maps them to
// a gateway error rather than an internal one.
package client
