/*
Package sqlite provides a SQLite-backed accounting.AssociationStore.

PURPOSE:
  Persists unit kind associations so a conversion index can be rebuilt on
  startup. Each reporting period is stored as its sortable string, which
  round-trips exactly and keeps the period columns range-scannable.

KEY TABLES:
  associations: one row per association, insertion order kept in seq

INDEXES:
  - idx_associations_first_period / idx_associations_second_period:
    lookups of every association mentioning a period

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of database/sql.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): readers don't block the
  single writer.

USAGE:
  store, err := sqlite.New("./data/accounting-time.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  catalog := accounting.NewCatalog(store)

SEE ALSO:
  - accounting/store.go: Interface definition
  - accounting/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/warp/accounting-time/accounting"
)

// Store implements accounting.AssociationStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS associations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		first_period TEXT NOT NULL,
		first_unit TEXT NOT NULL,
		second_period TEXT NOT NULL,
		second_unit TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_associations_first_period
		ON associations(first_period);
	CREATE INDEX IF NOT EXISTS idx_associations_second_period
		ON associations(second_period);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ASSOCIATION OPERATIONS
// =============================================================================

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Append adds one association. Associations without an id get a UUID.
func (s *Store) Append(ctx context.Context, a accounting.UnitKindAssociation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendAssociation(ctx, s.db, a)
}

// AppendBatch adds multiple associations atomically.
func (s *Store) AppendBatch(ctx context.Context, as []accounting.UnitKindAssociation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, a := range as {
		if err := s.appendAssociation(ctx, tx, a); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) appendAssociation(ctx context.Context, db execer, a accounting.UnitKindAssociation) error {
	if a.IsZero() {
		return fmt.Errorf("failed to append association: %w", accounting.ErrMissingArgument)
	}
	id := a.ID()
	if id == "" {
		id = uuid.NewString()
	}
	firstUnit, err := a.First().GetUnit()
	if err != nil {
		return err
	}
	secondUnit, err := a.Second().GetUnit()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO associations (id, first_period, first_unit, second_period, second_unit, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		a.First().SortableString(),
		firstUnit.String(),
		a.Second().SortableString(),
		secondUnit.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return accounting.ErrDuplicateAssociation
		}
		return fmt.Errorf("failed to append association: %w", err)
	}
	return nil
}

// List returns every association in insertion order.
func (s *Store) List(ctx context.Context) ([]accounting.UnitKindAssociation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryAssociations(ctx, `
		SELECT id, first_period, second_period FROM associations ORDER BY seq ASC`)
}

// ListByPeriod returns the associations with period on either side.
func (s *Store) ListByPeriod(ctx context.Context, period accounting.ReportingPeriod[accounting.UnitOfTime]) ([]accounting.UnitKindAssociation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := period.SortableString()
	return s.queryAssociations(ctx, `
		SELECT id, first_period, second_period FROM associations
		WHERE first_period = ? OR second_period = ?
		ORDER BY seq ASC`, key, key)
}

// Get returns one association by id.
func (s *Store) Get(ctx context.Context, id string) (accounting.UnitKindAssociation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found, err := s.queryAssociations(ctx, `
		SELECT id, first_period, second_period FROM associations WHERE id = ?`, id)
	if err != nil {
		return accounting.UnitKindAssociation{}, err
	}
	if len(found) == 0 {
		return accounting.UnitKindAssociation{}, accounting.ErrAssociationNotFound
	}
	return found[0], nil
}

// Delete removes one association by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM associations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete association: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return accounting.ErrAssociationNotFound
	}
	return nil
}

func (s *Store) queryAssociations(ctx context.Context, query string, args ...any) ([]accounting.UnitKindAssociation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var associations []accounting.UnitKindAssociation
	for rows.Next() {
		var id, first, second string
		if err := rows.Scan(&id, &first, &second); err != nil {
			return nil, err
		}
		a, err := decodeAssociation(id, first, second)
		if err != nil {
			return nil, fmt.Errorf("corrupt association %s: %w", id, err)
		}
		associations = append(associations, a)
	}
	return associations, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func decodeAssociation(id, first, second string) (accounting.UnitKindAssociation, error) {
	p1, err := accounting.ParseReportingPeriod(first)
	if err != nil {
		return accounting.UnitKindAssociation{}, err
	}
	p2, err := accounting.ParseReportingPeriod(second)
	if err != nil {
		return accounting.UnitKindAssociation{}, err
	}
	return accounting.NewUnitKindAssociation(p1, p2, id)
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}
