// Package commands contains the operations that change orders: registering
// one, advancing its stage and migrating legacy statuses. Each handler
// validates its command, takes the per-order lock where it writes, and runs
// the write inside one unit of work.
package commands

import (
	"context"

	"tailorshop/internal/core/ports"
)

// Handlers depend on these narrow views of ports.UnitOfWork so tests can
// substitute them without a database.
type (
	// TxManager opens and closes the transaction of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory hands out the order repository bound to the current
	// transaction, or to the plain connection before Begin.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW is one transaction over orders and their status history.
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//
	//	o, err := uow.OrderRepository().Get(ctx, id)
	//	// ... change o
	//	err = uow.OrderRepository().Update(ctx, o)
	//
	//	err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory returns a fresh OrderUoW per call; units of work are
	// never shared between goroutines.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
