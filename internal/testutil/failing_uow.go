package testutil

import (
	"context"
	"database/sql"
	"slices"

	"github.com/alexanderramin/followup/internal/db"
)

// FailKeyUoW runs transactions against DB but fails any write whose
// arguments include Key, returning Err. Reads pass through. Tests use it to
// check that multi-key local writes roll back as a unit.
type FailKeyUoW struct {
	DB  *sql.DB
	Key string
	Err error
}

func (u *FailKeyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failKeyWrites{DBTX: tx, key: u.Key, err: u.Err})
	})
}

type failKeyWrites struct {
	db.DBTX
	key string
	err error
}

func (f *failKeyWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if slices.Contains(args, any(f.key)) {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
