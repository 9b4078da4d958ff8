// Package server implements the HTTP surface of the track pool service.
//
// # Architecture
//
// The package follows a small Router/Middleware/Handler split:
//
//   - [Router] registers handlers and applies middleware ([BasicRouter] wraps
//     [http.ServeMux])
//   - [Middleware] provides request logging, CORS and panic recovery
//   - [TracksHandler] serves the JSON endpoints over one [pool.Pool]
//
// # Routes
//
//	GET /random?count=N → weighted random selection, count clamped to [1,50]
//	GET /search?q=text  → case-insensitive local search, missing q is a 400
//	GET /health         → liveness and cache freshness report
//
// # Error mapping
//
//	empty pool          → 404 "no songs available"
//	catalog unavailable → 503
//	handler panic       → 500 (recovery middleware)
package server
