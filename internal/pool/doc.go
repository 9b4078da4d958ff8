// Package pool implements the in-memory, time-bounded track cache.
//
// A [Pool] owns one snapshot of catalog tracks and refreshes it lazily when a
// read finds it empty or past its TTL. Refreshes page sequentially through the
// catalog source, paced by a [rate.Limiter] so the upstream API is never
// hammered, and stop at the first empty page.
//
// Failure semantics follow the stale-on-error policy:
//   - a failed first page with no existing snapshot is fatal
//     ([shared.ErrCatalogUnavailable])
//   - a failed later page ends the refresh with whatever accumulated so far
//   - a failed refresh on a warm pool serves the stale snapshot instead of
//     failing the caller
//
// Snapshots are built in a local slice and published with a single pointer
// swap under the lock, so concurrent readers observe either the whole old
// snapshot or the whole new one. Independent pools (e.g. a trending pool and
// an all-time pool reading disjoint page ranges via PageOffset) share no state
// and may refresh concurrently.
package pool
