/*
store.go - Persistence interface for unit kind associations

PURPOSE:
  Associations are the only input a conversion index needs, so they are the
  only thing persisted. Stores keep them in insertion order because index
  construction reports the first conflicting association.

IMPLEMENTATIONS:
  - accounting/store/memory.go: In-memory for testing
  - store/sqlite/sqlite.go: SQLite, periods stored by their sortable strings

SEE ALSO:
  - catalog.go: Builds and publishes indexes from a Store
*/
package accounting

import "context"

// AssociationStore persists associations by id.
type AssociationStore interface {
	// Append persists one association. Returns ErrDuplicateAssociation if its id exists.
	Append(ctx context.Context, a UnitKindAssociation) error

	// AppendBatch persists associations atomically: all or none.
	AppendBatch(ctx context.Context, as []UnitKindAssociation) error

	// List returns every association in insertion order.
	List(ctx context.Context) ([]UnitKindAssociation, error)

	// Get returns ErrAssociationNotFound for an unknown id.
	Get(ctx context.Context, id string) (UnitKindAssociation, error)

	// Delete returns ErrAssociationNotFound for an unknown id.
	Delete(ctx context.Context, id string) error
}
