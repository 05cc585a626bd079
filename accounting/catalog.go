package accounting

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// =============================================================================
// CATALOG - Publishes conversion indexes built from an AssociationStore
// =============================================================================

// Catalog owns the currently published conversion index. Readers call Index
// and query it without locking; writers are serialized and always build a
// complete new index before swapping it in.
type Catalog struct {
	store   AssociationStore
	current atomic.Pointer[UnitKindConversionIndex]
	writeMu sync.Mutex
}

// NewCatalog publishes an empty index. Call Reload to load the store.
func NewCatalog(store AssociationStore) *Catalog {
	c := &Catalog{store: store}
	empty, _ := NewUnitKindConversionIndex(nil)
	c.current.Store(empty)
	return c
}

// Index returns the published index. It is never nil.
func (c *Catalog) Index() *UnitKindConversionIndex {
	return c.current.Load()
}

// Reload rebuilds the index from every stored association.
func (c *Catalog) Reload(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.reloadLocked(ctx)
}

func (c *Catalog) reloadLocked(ctx context.Context) error {
	associations, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list associations: %w", err)
	}
	idx, err := NewUnitKindConversionIndex(associations)
	if err != nil {
		return fmt.Errorf("failed to build conversion index: %w", err)
	}
	c.current.Store(idx)

	zerolog.Ctx(ctx).Info().
		Int("associations", len(associations)).
		Int("entries", idx.Len()).
		Msg("conversion index published")
	return nil
}

// Add assigns ids to associations without one, checks them against the
// published index, persists them and publishes the extended index. Nothing is
// persisted if the new associations conflict.
func (c *Catalog) Add(ctx context.Context, associations ...UnitKindAssociation) ([]UnitKindAssociation, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	added := make([]UnitKindAssociation, len(associations))
	for i, a := range associations {
		if a.ID() == "" {
			a = a.WithID(uuid.NewString())
		}
		added[i] = a
	}

	candidate, err := NewUnitKindConversionIndex(append(c.Index().Associations(), added...))
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Int("associations", len(added)).Msg("rejected associations")
		return nil, err
	}
	if err := c.store.AppendBatch(ctx, added); err != nil {
		return nil, fmt.Errorf("failed to persist associations: %w", err)
	}
	c.current.Store(candidate)

	zerolog.Ctx(ctx).Info().
		Int("added", len(added)).
		Int("entries", candidate.Len()).
		Msg("conversion index published")
	return added, nil
}

// Remove deletes an association and republishes the index without it.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.store.Delete(ctx, id); err != nil {
		return err
	}
	return c.reloadLocked(ctx)
}

// Get returns a stored association.
func (c *Catalog) Get(ctx context.Context, id string) (UnitKindAssociation, error) {
	return c.store.Get(ctx, id)
}

// List returns every stored association in insertion order.
func (c *Catalog) List(ctx context.Context) ([]UnitKindAssociation, error) {
	return c.store.List(ctx)
}
