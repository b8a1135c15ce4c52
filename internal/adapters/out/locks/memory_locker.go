// Package locks implements ports.OrderLocker, in process for a single
// instance and on Redis when several instances share one database.
package locks

import (
	"context"
	"fmt"
	"sync"

	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/core/ports"
)

// MemoryLocker is a keyed mutex. Entries are removed once nobody holds or
// waits for them, so memory use follows the number of busy orders.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[kernel.UUID]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: make(map[kernel.UUID]*slot)}
}

// Lock implements ports.OrderLocker.
func (l *MemoryLocker) Lock(ctx context.Context, id kernel.UUID) (func(), error) {
	s := l.acquireSlot(id)

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(id, s)
		return nil, fmt.Errorf("%w: order %s: %w", ports.ErrLockNotAcquired, id, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.releaseSlot(id, s)
		})
	}, nil
}

func (l *MemoryLocker) acquireSlot(id kernel.UUID) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[id]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[id] = s
	}
	s.refs++
	return s
}

func (l *MemoryLocker) releaseSlot(id kernel.UUID, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, id)
	}
}

// held is the number of orders with a holder or a waiter.
func (l *MemoryLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
