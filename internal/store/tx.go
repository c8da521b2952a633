package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
)

// withTx runs fn inside a transaction. The transaction is committed only when
// fn returns nil and is rolled back on every other exit path, panics included.
func withTx(ctx context.Context, drv dialect.Driver, fn func(tx dialect.Tx) error) error {
	tx, err := drv.Tx(ctx)
	if err != nil {
		return persistenceErr("starting transaction", err)
	}

	defer func() {
		if v := recover(); v != nil {
			tx.Rollback()
			panic(v)
		}
	}()

	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back transaction: %v", err, rerr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return persistenceErr("committing transaction", err)
	}
	return nil
}
