// Package store implements the card display state machine: a single-writer
// state container that arbitrates reveal and lock intents over an
// asynchronously loaded card and publishes immutable snapshots to observers.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/avolkov/cardscreen/internal/mask"
	"github.com/avolkov/cardscreen/internal/model"
	"github.com/avolkov/cardscreen/internal/provider"
)

// Store owns the current DisplayState and the cached CardDetails.
// All transitions are applied under one mutex, atomically and in dispatch
// order; lock state always dominates reveal state.
type Store struct {
	provider provider.CardProvider
	log      *zap.Logger
	ctx      context.Context // bounds background fetches

	mu      sync.Mutex
	details *model.CardDetails
	state   model.DisplayState
	subs    map[uint64]*subscription
	nextSub uint64
	loadSeq uint64
}

// New constructs a store and issues the initial load. ctx bounds every
// background fetch for the store's lifetime.
func New(ctx context.Context, p provider.CardProvider, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		provider: p,
		log:      log,
		ctx:      ctx,
		subs:     make(map[uint64]*subscription),
	}
	s.mu.Lock()
	s.loadLocked()
	s.mu.Unlock()
	return s
}

// Dispatch applies one intent. It never fails and never blocks on the fetch:
// a load publishes its loading snapshot synchronously and resolves in the
// background.
func (s *Store) Dispatch(in model.Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch in.(type) {
	case model.LoadCardDetails:
		s.loadLocked()
	case model.ToggleVisibility:
		s.toggleVisibilityLocked()
	case model.ToggleLock:
		s.toggleLockLocked()
	}
}

// State returns the current snapshot.
func (s *Store) State() model.DisplayState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers an observer. The current snapshot is delivered first,
// then every subsequent snapshot in transition order with no gaps. The
// returned cancel stops delivery and closes the channel.
func (s *Store) Subscribe() (<-chan model.DisplayState, func()) {
	sub := newSubscription()
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	sub.push(s.state)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		sub.close()
	}
	return sub.out, cancel
}

func (s *Store) publishLocked() {
	for _, sub := range s.subs {
		sub.push(s.state)
	}
}

// maskedFields projects details into masked display fields, or placeholders
// when no details are cached.
func maskedFields(d *model.CardDetails) (number, holder, expiry, cvv string) {
	if d == nil {
		return mask.PlaceholderNumber, "", mask.Expiry, mask.CVV
	}
	return mask.Number(d.Number), d.Holder, mask.Expiry, mask.CVV
}

// loadLocked starts a (re-)load: the cache is discarded, the loading snapshot
// is published synchronously and the fetch continues in the background. Loads
// are sequence-numbered; only the most recently issued load may apply its
// resolution (last-issued-wins).
func (s *Store) loadLocked() {
	s.loadSeq++
	seq := s.loadSeq
	s.details = nil
	number, holder, expiry, cvv := maskedFields(nil)
	s.state = model.DisplayState{
		CardNumber: number,
		CardHolder: holder,
		Expiry:     expiry,
		CVV:        cvv,
		ButtonText: model.ButtonReveal,
		IsLoading:  true,
	}
	s.publishLocked()
	go s.fetch(seq)
}

func (s *Store) fetch(seq uint64) {
	d, err := s.provider.FetchCardDetails(s.ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		s.log.Debug("stale load resolution discarded",
			zap.Uint64("seq", seq),
			zap.Uint64("current", s.loadSeq),
		)
		return
	}
	if err != nil {
		s.log.Error("fetch card details", zap.Error(err))
		st := s.state
		st.IsLoading = false
		st.IsError = true
		s.state = st
		s.publishLocked()
		return
	}

	s.details = &d
	number, holder, expiry, cvv := maskedFields(s.details)
	s.state = model.DisplayState{
		CardNumber: number,
		CardHolder: holder,
		Expiry:     expiry,
		CVV:        cvv,
		ButtonText: model.ButtonReveal,
	}
	s.publishLocked()
}

func (s *Store) toggleVisibilityLocked() {
	switch {
	case s.state.IsLoading:
		// toggles are no-ops for the whole loading phase
	case s.state.IsLocked:
		// reveal is never permitted while locked; re-assert the masked state
		st := s.state
		st.IsRevealed = false
		st.ButtonText = model.ButtonReveal
		s.state = st
		s.publishLocked()
	case s.details == nil:
		// premature toggle before details arrived: state unchanged
	case s.state.IsRevealed:
		number, holder, expiry, cvv := maskedFields(s.details)
		st := s.state
		st.CardNumber, st.CardHolder, st.Expiry, st.CVV = number, holder, expiry, cvv
		st.IsRevealed = false
		st.ButtonText = model.ButtonReveal
		s.state = st
		s.publishLocked()
	default:
		st := s.state
		st.CardNumber, st.CardHolder, st.Expiry, st.CVV =
			s.details.Number, s.details.Holder, s.details.Expiry, s.details.CVV
		st.IsRevealed = true
		st.ButtonText = model.ButtonHide
		s.state = st
		s.publishLocked()
	}
}

func (s *Store) toggleLockLocked() {
	if s.state.IsLoading {
		return
	}
	st := s.state
	if !st.IsLocked {
		// locking dominates reveal: clear it and re-mask
		number, holder, expiry, cvv := maskedFields(s.details)
		st.CardNumber, st.CardHolder, st.Expiry, st.CVV = number, holder, expiry, cvv
		st.IsLocked = true
		st.IsRevealed = false
		st.ButtonText = model.ButtonReveal
	} else {
		// unlocking does not auto-reveal; displayed fields stay as they were
		st.IsLocked = false
	}
	s.state = st
	s.publishLocked()
}
