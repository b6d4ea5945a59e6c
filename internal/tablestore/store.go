// Package tablestore defines the table-per-entity remote datastore the console
// syncs with.
package tablestore

import (
	"context"

	"house_management/internal/domain"
)

// Store is a remote datastore exposing the six console tables.
// Every method is a single independent call; nothing spans more than one table.
type Store interface {
	// SelectAll reads every row of table into dest, a pointer to a slice of the
	// table's row type.
	SelectAll(ctx context.Context, table string, dest any) error

	// Upsert inserts the record or updates the existing row with the same id.
	Upsert(ctx context.Context, rec domain.Record) error

	// Delete removes the row with the given id. Deleting a missing row is not an error.
	Delete(ctx context.Context, table, id string) error
}
