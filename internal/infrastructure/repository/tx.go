package repository

import (
	"context"

	domainRepo "github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txContextKey struct{}

// txManager implements repository.TransactionManager on gorm. The open
// transaction is stashed in the context so every repository sharing the
// same *gorm.DB joins it transparently.
type txManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a new gorm-backed transaction manager
func NewTransactionManager(db *gorm.DB) domainRepo.TransactionManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls join the outer transaction instead of opening a new one
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx
}

// conn resolves the connection for a repository call: the context's
// transaction when one is open, the base handle otherwise.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
