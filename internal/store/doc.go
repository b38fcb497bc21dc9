// Package store provides SQLite-backed durable storage for the site.
//
// One database holds four concerns, each behind its own repo type:
//
//   - Achievement state: a per-visitor key/value namespace that backs the
//     achievement engine's Storage interface. The store only moves opaque
//     strings; signing and validation live with the engine.
//   - Content: the generic document store the portfolio sections live in
//     (entity type + id + JSON payload).
//   - Messages: contact form submissions.
//   - Visitors: privacy-conscious visit log (salted-hash IPs only) with a
//     12-month retention window.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Schema lives in schema.sql (embedded); incremental migrations key off
// PRAGMA user_version.
package store
