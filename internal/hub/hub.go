package hub

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"matchd/internal/store"
	"matchd/pkg/types"
)

// ErrUnknownMatch is returned by Subscribe for ids the store has never seen.
var ErrUnknownMatch = errors.New("unknown match")

// subscriberBuffer is the delivery channel capacity on top of the replayed
// history. A consumer that falls this far behind is dropped.
const subscriberBuffer = 64

// Subscription is one registered sink for a single match's event stream.
type Subscription struct {
	id      uint64
	matchID string
	ch      chan types.MatchEvent
	seen    int // highest log sequence delivered (replay cutoff at birth)
	closed  bool
	hub     *Hub
}

// C is the delivery channel. It is closed when the subscription is removed,
// whether by Close, by the hub shutting down, or by falling behind.
func (s *Subscription) C() <-chan types.MatchEvent { return s.ch }

// MatchID reports the match this subscription is bound to.
func (s *Subscription) MatchID() string { return s.matchID }

// Close unregisters the subscription and closes its channel. Idempotent.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub manages per-match subscriber registries.
type Hub struct {
	mu     sync.Mutex
	store  *store.Store
	subs   map[string][]*Subscription // registration order per match
	nextID uint64
	closed bool
	log    zerolog.Logger
}

func New(st *store.Store, log zerolog.Logger) *Hub {
	return &Hub{
		store: st,
		subs:  make(map[string][]*Subscription),
		log:   log,
	}
}

// Subscribe registers a new sink for matchID. The match's recorded history
// is queued on the returned channel before any live event, in append order.
// The snapshot and the registration happen under one lock, so a publish
// racing with Subscribe lands on exactly one side of the cutoff.
func (h *Hub) Subscribe(matchID string) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, errors.New("hub closed")
	}
	if _, ok := h.store.Get(matchID); !ok {
		return nil, ErrUnknownMatch
	}
	history := h.store.Events(matchID)
	h.nextID++
	sub := &Subscription{
		id:      h.nextID,
		matchID: matchID,
		ch:      make(chan types.MatchEvent, len(history)+subscriberBuffer),
		seen:    len(history),
		hub:     h,
	}
	for _, ev := range history {
		sub.ch <- ev
	}
	h.subs[matchID] = append(h.subs[matchID], sub)
	subscribersGauge.Inc()
	h.log.Debug().Str("match_id", matchID).Uint64("sub_id", sub.id).Int("replayed", len(history)).Msg("subscriber added")
	return sub, nil
}

// Publish delivers ev to every subscriber registered for matchID, in
// registration order. seq is the event's position in the match log (1-based,
// as returned by store.AppendEvent); subscribers that already saw it via
// replay are skipped. A subscriber whose buffer is full is removed, without
// affecting delivery to the others.
func (h *Hub) Publish(matchID string, seq int, ev types.MatchEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subs[matchID]
	if len(subs) == 0 {
		return
	}
	var dropped []*Subscription
	for _, sub := range subs {
		if seq > 0 && seq <= sub.seen {
			continue // already in this subscriber's replay
		}
		select {
		case sub.ch <- ev:
			if seq > sub.seen {
				sub.seen = seq
			}
		default:
			dropped = append(dropped, sub)
		}
	}
	for _, sub := range dropped {
		h.log.Warn().Str("match_id", matchID).Uint64("sub_id", sub.id).Msg("subscriber lagging, dropping")
		h.removeLocked(sub)
	}
}

// SubscriberCount reports the number of live subscribers for a match.
func (h *Hub) SubscriberCount(matchID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[matchID])
}

// Close drops every subscriber and rejects further subscribes.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, subs := range h.subs {
		for _, sub := range subs {
			sub.closed = true
			close(sub.ch)
			subscribersGauge.Dec()
		}
	}
	h.subs = make(map[string][]*Subscription)
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

// removeLocked drops sub from its match's registry and closes its channel.
// Safe to call twice; the second call is a no-op. Caller holds h.mu.
func (h *Hub) removeLocked(sub *Subscription) {
	if sub.closed {
		return
	}
	sub.closed = true
	close(sub.ch)
	subscribersGauge.Dec()
	subs := h.subs[sub.matchID]
	for i, s := range subs {
		if s.id == sub.id {
			subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(subs) == 0 {
		delete(h.subs, sub.matchID)
		return
	}
	h.subs[sub.matchID] = subs
}
