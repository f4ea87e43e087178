package engine

import "matchd/pkg/types"

// Publisher receives every event the engine emits, together with the event's
// 1-based position in its match log. Implementations should be lightweight
// and non-blocking; Publish must not panic.
type Publisher interface {
	Publish(matchID string, seq int, ev types.MatchEvent)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(string, int, types.MatchEvent) {}
