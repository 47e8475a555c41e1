// Package repository provides PostgreSQL data access for the store API.
// It follows the Querier/Params convention: one method per statement, a
// params struct for multi-argument statements, and transactions exposed as
// BeginTx -> Tx.Queries() -> Commit with a deferred Rollback.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx a query method needs; both *pgxpool.Pool and
// pgx.Tx satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries implements Querier against a DBTX.
type Queries struct {
	db   DBTX
	pool *pgxpool.Pool
}

// New creates a Queries bound to the connection pool.
func New(pool *pgxpool.Pool) *Queries {
	return &Queries{db: pool, pool: pool}
}

// Compile-time check that Queries implements Querier.
var _ Querier = (*Queries)(nil)

// Tx is a database transaction scoped view of the repository.
type Tx interface {
	// Queries returns a Querier whose statements run inside the transaction.
	Queries() Querier

	Commit(ctx context.Context) error

	// Rollback is safe to defer after Commit; it becomes a no-op.
	Rollback(ctx context.Context) error
}

// BeginTx starts a transaction on the pool.
func (q *Queries) BeginTx(ctx context.Context) (Tx, error) {
	if q.pool == nil {
		return nil, errors.New("repository: BeginTx on transaction-scoped queries")
	}

	tx, err := q.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &pgxTx{tx: tx, queries: &Queries{db: tx}}, nil
}

type pgxTx struct {
	tx      pgx.Tx
	queries *Queries
}

func (t *pgxTx) Queries() Querier { return t.queries }

func (t *pgxTx) Commit(ctx context.Context) error { return t.tx.Commit(ctx) }

func (t *pgxTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

// ErrNoRows is re-exported so callers do not import pgx directly.
var ErrNoRows = pgx.ErrNoRows

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505). The order materializer relies on this to turn a
// lost idempotency race into a duplicate response.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation (SQLSTATE 23503), as raised when deleting a product that order
// items still reference.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
