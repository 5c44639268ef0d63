package db

import "context"

// SchemaInterface represents a database schema.
type SchemaInterface interface {
	// Upgrade upgrades the schema to the latest version.
	//
	// It is safe to call on every startup; steps already applied
	// are skipped.
	Upgrade(ctx context.Context) error

	// Version returns the current version of the schema.
	// 0 means the schema has never been applied.
	Version(ctx context.Context) (int, error)
}
