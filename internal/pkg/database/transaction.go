package database

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TxFunc defines a transaction function
type TxFunc func(tx *gorm.DB) error

// TransactionWithOptions executes a function within a database transaction with custom options
func (db *DB) TransactionWithOptions(ctx context.Context, opts *sql.TxOptions, fn TxFunc) error {
	return db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(tx); err != nil {
			db.logger.Debug("transaction failed, rolling back", zap.Error(err))
			return err
		}
		return nil
	}, opts)
}

// ReadCommitted executes a function in READ COMMITTED isolation. A locked
// read inside it always observes the latest committed row, which is what
// the quota row lock relies on.
func (db *DB) ReadCommitted(ctx context.Context, fn TxFunc) error {
	return db.TransactionWithOptions(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	}, fn)
}
