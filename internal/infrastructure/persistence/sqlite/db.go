package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"go.uber.org/zap"
)

// txKey carries the active *sql.Tx on a context
type txKey struct{}

// Executor covers both *sql.DB and *sql.Tx
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DB implements port.TransactionManager by carrying the transaction on ctx
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a transaction manager over an open database
func NewDB(sqlDB *sql.DB, logger *zap.Logger) *DB {
	return &DB{DB: sqlDB, logger: logger}
}

// WithTransaction runs fn with a transaction on its ctx. Nested calls join the
// transaction already carried by ctx, so only the outermost call commits.
func (db *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			db.logger.Error("Transaction panicked, rolled back", zap.Any("panic", p))
			panic(p)
		}
	}()

	return db.finish(tx, fn(context.WithValue(ctx, txKey{}, tx)))
}

// finish commits on success and rolls back otherwise, keeping fn's error
func (db *DB) finish(tx *sql.Tx, fnErr error) error {
	if fnErr != nil {
		if err := tx.Rollback(); err != nil {
			db.logger.Error("Failed to rollback transaction", zap.Error(err))
		}
		return fnErr
	}

	if err := tx.Commit(); err != nil {
		db.logger.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// TxFromContext retrieves the transaction placed on ctx by WithTransaction
func TxFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// ExecutorFrom returns the transaction on ctx, or db when there is none.
// Repositories call it so their statements join the caller's transaction.
func ExecutorFrom(ctx context.Context, db *sql.DB) Executor {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return db
}

var _ port.TransactionManager = (*DB)(nil)
