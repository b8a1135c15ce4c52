package ports

import (
	"context"
	"errors"

	"tailorshop/internal/core/domain/model/kernel"
)

// ErrLockNotAcquired is returned when an order stays locked by someone else
// until the context is done.
var ErrLockNotAcquired = errors.New("order lock not acquired")

// OrderLocker serializes read-modify-write cycles on a single order so that
// two concurrent advances cannot both start from the same stage.
type OrderLocker interface {
	// Lock blocks until the order is held or ctx is done. The returned func
	// releases the lock and is safe to call more than once.
	Lock(ctx context.Context, id kernel.UUID) (unlock func(), err error)
}
