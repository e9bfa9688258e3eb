// Package migrations contains the catalog schema migrations.
// Each migration file uses init() to call migration.Register().
// This package is blank-imported by cmd/ingestd so every migration is
// registered at CLI startup.
package migrations
