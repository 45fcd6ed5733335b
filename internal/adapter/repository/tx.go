package repository

import (
	"context"

	domainRepo "cups-server/internal/domain/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type txContextKey struct{}

// ContextWithTx returns a context carrying the given transaction handle.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext returns the transaction handle carried by ctx, if any.
func TxFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// conn resolves the database handle for a repository call: the transaction
// from the context when one is active, the base connection otherwise.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// gormTransactor implements repository.Transactor over a GORM connection.
type gormTransactor struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTransactor creates a Transactor backed by the given connection.
func NewTransactor(db *gorm.DB, logger *zap.Logger) domainRepo.Transactor {
	return &gormTransactor{db: db, logger: logger}
}

// WithinTransaction runs fn inside a single database transaction. When the
// context already carries a transaction the function joins it instead of
// opening a nested one.
func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTx(ctx, tx))
	})
}
