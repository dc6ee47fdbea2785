package store

import (
	"sync"

	"github.com/avolkov/cardscreen/internal/model"
)

// subscription carries snapshots from the store to one observer.
// Snapshots queue without bound and a dedicated goroutine drains the queue
// into the delivery channel, so a slow observer never blocks the store or
// loses a transition, and delivery order matches transition order.
type subscription struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []model.DisplayState
	closed bool

	out  chan model.DisplayState
	done chan struct{}
}

func newSubscription() *subscription {
	s := &subscription{
		out:  make(chan model.DisplayState),
		done: make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.pump()
	return s
}

// push enqueues a snapshot for delivery. Never blocks.
func (s *subscription) push(st model.DisplayState) {
	s.mu.Lock()
	if !s.closed {
		s.queue = append(s.queue, st)
		s.cond.Signal()
	}
	s.mu.Unlock()
}

// close stops delivery. Pending snapshots are dropped and out is closed.
func (s *subscription) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	s.cond.Signal()
	s.mu.Unlock()
}

func (s *subscription) pump() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			close(s.out)
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- next:
		case <-s.done:
			close(s.out)
			return
		}
	}
}
