// Package sqlite provides an embedded document store for the haat catalog.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Every collection (products, categories, featured_banners,
// orders, messages, settings, loginStats) is a table holding the JSON document
// plus the columns needed for filtering and ordering.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.haat/data/catalog.db
//
// # Watching
//
// Writes made through this process are pushed to watchers immediately.
// Writes made by other processes sharing the file are picked up by polling.
package sqlite
