// Package gamedata mirrors the upstream game-definition data into the local
// versioned store and keeps it fresh.
//
// The synchronization engine tracks two independent version tracks: game
// data (collections like units, skill, equipment) and the localization
// bundle (per-language display text). A track is updated when its upstream
// version differs from the locally recorded one by exact string comparison;
// after every successful game-data update the four derived lookup tables
// are rebuilt so they never drift from the data they summarize.
//
// The poller drives unattended updates on a fixed interval; the /refresh
// endpoint and process startup drive them on demand. All three paths funnel
// through UpdateCheck, which is idempotent for identical remote versions.
//
// # HTTP Endpoints
//
//   - GET  /version : current version state.
//   - POST /refresh : run an update check (supports ?force=true).
//   - GET  /data/{collection} : raw collection at the current version.
//   - GET  /localization/{lang} : language map at the current version.
//   - GET  /lookup/{table} : derived display-metadata table.
package gamedata
