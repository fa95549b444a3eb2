package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

type txKey struct{}

// WithTx returns a context carrying the given transaction so repositories
// called underneath participate in it.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

type afterCommitKey struct{}

type afterCommitHooks struct {
	fns []func()
}

// AfterCommit defers fn until the surrounding transaction commits, so side
// effects that cannot roll back (SSE pushes) never leak from an aborted
// transaction. Outside a transaction fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	if hooks, ok := ctx.Value(afterCommitKey{}).(*afterCommitHooks); ok {
		hooks.fns = append(hooks.fns, fn)
		return
	}
	fn()
}

func collectAfterCommit(ctx context.Context) (context.Context, *afterCommitHooks) {
	hooks := &afterCommitHooks{}
	return context.WithValue(ctx, afterCommitKey{}, hooks), hooks
}

func (h *afterCommitHooks) run() {
	for _, fn := range h.fns {
		fn()
	}
}

// GetQuerier returns the transaction bound to ctx, or the pool.
// Used in repositories to support both transactional and non-transactional operations.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}

// TxFunc is one unit of transactional work.
type TxFunc = func(ctx context.Context, tx pgx.Tx) error

// TxRunner is the seam services run their transactions through, so
// transition logic can be exercised against in-memory repositories.
type TxRunner interface {
	InTx(ctx context.Context, fn TxFunc) error
	InSerializableTx(ctx context.Context, fn TxFunc) error
}

// PoolTxRunner is the pgx-backed TxRunner.
type PoolTxRunner struct {
	db *database.DB
}

func NewTxRunner(db *database.DB) *PoolTxRunner {
	return &PoolTxRunner{db: db}
}

func (r *PoolTxRunner) InTx(ctx context.Context, fn TxFunc) error {
	return WithTransaction(ctx, r.db, fn)
}

func (r *PoolTxRunner) InSerializableTx(ctx context.Context, fn TxFunc) error {
	return WithSerializableTransaction(ctx, r.db, fn)
}

// WithTransaction executes fn inside a database transaction.
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	return runInTx(ctx, tx, fn)
}

// WithSerializableTransaction executes fn inside a SERIALIZABLE transaction
// and retries once on a serialization failure (SQLSTATE 40001). Lifecycle
// transitions go through here; the re-read of current status and the status
// write must commit together.
func WithSerializableTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context, tx pgx.Tx) error) error {
	const maxAttempts = 2

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var tx pgx.Tx
		tx, err = db.BeginSerializableTx(ctx)
		if err != nil {
			return fmt.Errorf("begin serializable transaction: %w", err)
		}

		err = runInTx(ctx, tx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) || attempt == maxAttempts {
			return err
		}
	}
	return err
}

func runInTx(ctx context.Context, tx pgx.Tx, fn func(ctx context.Context, tx pgx.Tx) error) error {
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	txCtx, hooks := collectAfterCommit(WithTx(ctx, tx))
	if err := fn(txCtx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	hooks.run()
	return nil
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}
