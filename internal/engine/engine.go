package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"matchd/internal/store"
	"matchd/pkg/types"
)

// Engine advances matches through their lifecycle and generates events while
// they are live. All state transitions and event emission are serialized
// through one mutex, so there is a single logical writer per match and the
// event log order is a strict total order.
type Engine struct {
	mu     sync.Mutex
	store  *store.Store
	pub    Publisher
	timers map[string]*matchTimers
	closed bool

	duration time.Duration
	minDelay time.Duration
	maxDelay time.Duration
	players  []string
	cards    []string
	fouls    []string
	fixtures []Fixture

	rnd *rand.Rand // guarded by mu
	now func() time.Time
	log zerolog.Logger
}

// matchTimers is the ownership table entry for one live match: the pending
// next-event timer and the end-of-match timer. Both are cancelled together.
type matchTimers struct {
	event *time.Timer
	end   *time.Timer
}

// SetPublisher installs the fan-out layer that receives every emitted event.
// Must be called before the first match starts.
func (e *Engine) SetPublisher(p Publisher) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p == nil {
		e.pub = noopPublisher{}
		return
	}
	e.pub = p
}

// CreateMatch registers a new scheduled match with a 0-0 score.
func (e *Engine) CreateMatch(teamA, teamB string) (types.Match, error) {
	m := types.Match{
		ID:     uuid.NewString(),
		TeamA:  teamA,
		TeamB:  teamB,
		Status: types.StatusScheduled,
	}
	created, err := e.store.Create(m)
	if err != nil {
		return types.Match{}, err
	}
	e.log.Info().Str("match_id", created.ID).Str("team_a", teamA).Str("team_b", teamB).Msg("match created")
	return created, nil
}

// SeedMatches creates the configured sample fixtures.
func (e *Engine) SeedMatches() ([]types.Match, error) {
	out := make([]types.Match, 0, len(e.fixtures))
	for _, f := range e.fixtures {
		m, err := e.CreateMatch(f.TeamA, f.TeamB)
		if err != nil {
			return out, err
		}
		out = append(out, m)
	}
	return out, nil
}

// ListMatches returns all matches in creation order.
func (e *Engine) ListMatches() []types.Match {
	return e.store.List()
}

// GetMatch returns the match, or false if the id is unknown.
func (e *Engine) GetMatch(id string) (types.Match, bool) {
	return e.store.Get(id)
}

// MatchEvents returns the recorded event history for a match, or false if
// the id is unknown.
func (e *Engine) MatchEvents(id string) ([]types.MatchEvent, bool) {
	if _, ok := e.store.Get(id); !ok {
		return nil, false
	}
	return e.store.Events(id), true
}

// Ready reports whether the engine is accepting work. False after Close.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed
}

// Close cancels every pending timer. Matches keep whatever status they had;
// nothing is persisted anyway.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for id, t := range e.timers {
		t.event.Stop()
		t.end.Stop()
		delete(e.timers, id)
	}
}

// emitLocked appends ev to the match log and hands it to the publisher with
// its log sequence number. Caller holds e.mu.
func (e *Engine) emitLocked(id string, ev types.MatchEvent) {
	seq := e.store.AppendEvent(id, ev)
	if seq == 0 {
		// match vanished between schedule and fire; absorb silently
		return
	}
	eventsTotal.WithLabelValues(string(ev.Type)).Inc()
	e.pub.Publish(id, seq, ev)
	e.log.Info().Str("match_id", id).Str("type", string(ev.Type)).Str("details", ev.Details).Msg("event")
}
