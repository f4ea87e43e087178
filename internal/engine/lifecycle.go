package engine

import (
	"time"

	"matchd/pkg/types"
)

// StartMatch transitions a scheduled match to live, emits the match_started
// event and arms the match's timer chain. It returns the updated match, or a
// rejection when the id is unknown or the match is not in the scheduled
// state. The rejection is synchronous; all event generation happens on
// timers afterwards.
func (e *Engine) StartMatch(id string) (types.Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return types.Match{}, ErrMatchNotFound(id)
	}
	m, ok := e.store.Get(id)
	if !ok {
		return types.Match{}, ErrMatchNotFound(id)
	}
	if m.Status != types.StatusScheduled {
		return types.Match{}, ErrInvalidTransition(id, m.Status)
	}

	started := e.now()
	updated, _ := e.store.Apply(id, func(m types.Match) types.Match {
		m.Status = types.StatusLive
		m.StartedAt = &started
		return m
	})
	e.emitLocked(id, types.MatchEvent{
		Type:      types.EventMatchStarted,
		Timestamp: started,
		MatchID:   id,
	})

	e.timers[id] = &matchTimers{
		end:   time.AfterFunc(e.duration, func() { e.endMatch(id) }),
		event: time.AfterFunc(e.nextDelayLocked(), func() { e.generate(id) }),
	}
	e.log.Info().Str("match_id", id).Dur("duration", e.duration).Msg("match started")
	return updated, nil
}

// StopMatch ends a live match immediately and cancels all of its pending
// timers. Idempotent: stopping an already-ended or never-started match is a
// no-op.
func (e *Engine) StopMatch(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endLocked(id)
}

// endMatch is the end-of-match timer callback.
func (e *Engine) endMatch(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.endLocked(id)
}

// endLocked performs the live -> ended transition and releases the match's
// timers. A match that is not live only gets its timers cleaned up; the
// double-fire race between the duration timer and an explicit stop resolves
// here as a silent no-op. Caller holds e.mu.
func (e *Engine) endLocked(id string) {
	if t, ok := e.timers[id]; ok {
		t.event.Stop()
		t.end.Stop()
		delete(e.timers, id)
	}
	m, ok := e.store.Get(id)
	if !ok || m.Status != types.StatusLive {
		return
	}
	ended := e.now()
	updated, _ := e.store.Apply(id, func(m types.Match) types.Match {
		m.Status = types.StatusEnded
		m.EndedAt = &ended
		return m
	})
	final := updated.Score
	e.emitLocked(id, types.MatchEvent{
		Type:      types.EventMatchEnded,
		Timestamp: ended,
		MatchID:   id,
		Score:     &final,
		Details:   "Match finished",
	})
	e.log.Info().Str("match_id", id).Int("score_a", final.A).Int("score_b", final.B).Msg("match ended")
}
