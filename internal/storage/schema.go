package storage

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

const parkForeignKey = `("park_ID") REFERENCES "parks" ("park_ID") ON DELETE CASCADE`

// EnsureSchema creates the six tables when they do not exist. Existing
// tables and their rows are left untouched.
func EnsureSchema(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().
		Model((*Park)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create table parks: %w", err)
	}

	for _, child := range childModels {
		if _, err := db.NewCreateTable().
			Model(child.model).
			IfNotExists().
			ForeignKey(parkForeignKey).
			Exec(ctx); err != nil {
			return fmt.Errorf("create table %s: %w", child.table, err)
		}
	}
	return nil
}
