package store

import (
	"sync"

	"orsched/pkg/model"
)

// Subscription is a latest-value feed of the full booking set. The channel is
// primed with the current snapshot at subscription time and replaced, never
// queued, on each subsequent commit: a slow consumer only ever observes the
// most recent state.
type Subscription struct {
	id    uint64
	ch    chan []model.Booking
	store *Store
	once  sync.Once
}

// Updates returns the snapshot channel. The channel is closed when the
// subscription or the store is closed.
func (s *Subscription) Updates() <-chan []model.Booking {
	return s.ch
}

// Close removes the subscription from the store and closes its channel.
// Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.store.unsubscribe(s.id)
	})
}

// Subscribe registers a new observer of the booking set. The subscriber
// immediately receives the current snapshot, then every committed state until
// it closes the subscription.
func (s *Store) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &Subscription{
		id:    s.nextSub,
		ch:    make(chan []model.Booking, 1),
		store: s,
	}
	s.nextSub++

	if s.closed {
		close(sub.ch)
		return sub
	}

	s.subs[sub.id] = sub
	sub.ch <- s.cloneAllLocked()
	return sub
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(sub.ch)
	}
}

// publishLocked hands the new full set to every subscriber, dropping any
// stale undelivered snapshot first. Sends never block: all sends happen under
// the store lock and each channel holds at most one value.
func (s *Store) publishLocked() {
	for _, sub := range s.subs {
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- s.cloneAllLocked():
		default:
		}
	}
}
