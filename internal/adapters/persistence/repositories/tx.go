package repositories

import (
	"context"
	"errors"

	"petfind/internal/core/domain"

	"gorm.io/gorm"
)

type txKey struct{}

// gormTransactor implements Transactor on top of gorm transactions
type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a new gorm backed transactor
func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

// WithinTx runs fn in a transaction; nested calls reuse the outer one
func (t *gormTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// notFound maps gorm.ErrRecordNotFound to the given domain error
func notFound(err error, target *domain.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

// duplicate maps a unique key violation to a domain conflict.
// It needs TranslateError on the gorm config.
func duplicate(err error, target *domain.Error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return target
	}
	return err
}
