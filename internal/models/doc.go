// Package models defines the track data model shared by the catalog client,
// the pool cache, the selection engine and the presentation layers.
//
// [Track] is the normalized catalog entry. Upstream records arrive with wildly
// inconsistent fields; normalization fills sentinel values so downstream code
// never branches on missing metadata:
//   - missing id            → locally generated uuid
//   - missing artists       → "Unknown Artist" on display
//   - missing genre / mood / release date → "Unknown"
//
// A track is usable when at least one of StreamURL/DownloadURL is set. The
// selection engine is responsible for never surfacing an unusable track.
package models
