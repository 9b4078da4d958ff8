// Package catalog implements the client for the upstream royalty-free music catalog API.
//
// The package exposes two layers:
//
// 1. [Source]: the minimal contract the pool and CLI depend on
//   - GetPage fetches one 1-based page of the popularity-ranked catalog
//   - Search runs a remote text query
//
// 2. [Client]: the HTTP implementation of [Source]
//   - bounded per-request timeout
//   - non-2xx responses are errors, an empty page is a normal end-of-catalog signal
//   - raw upstream records are normalized into [models.Track] values
//     (local uuid ids, sentinel metadata, artist credit cleanup)
//
// Test doubles for [Source] live in internal/testing.
package catalog
