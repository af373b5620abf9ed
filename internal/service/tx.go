package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode with stub repos).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// CacheInvalidator is implemented by caches that mutating services should
// flush after a successful commit. Best-effort: failures are logged, never
// propagated.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}
