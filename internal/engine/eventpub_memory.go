package engine

import (
	"sync"

	"matchd/pkg/types"
)

// PublishedEvent is one Publish call recorded by MemoryPublisher.
type PublishedEvent struct {
	MatchID string
	Seq     int
	Event   types.MatchEvent
}

// MemoryPublisher stores published events in-memory for tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

func (p *MemoryPublisher) Publish(matchID string, seq int, ev types.MatchEvent) {
	p.mu.Lock()
	p.events = append(p.events, PublishedEvent{MatchID: matchID, Seq: seq, Event: ev})
	p.mu.Unlock()
}

func (p *MemoryPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PublishedEvent, len(p.events))
	copy(out, p.events)
	return out
}
