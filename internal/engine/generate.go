package engine

import (
	"fmt"
	"time"

	"matchd/pkg/types"
)

// Event kind weights: goal 40%, foul 30%, card 30%.
const (
	goalWeight = 0.40
	foulWeight = 0.30
)

// generate is the next-event timer callback. It re-checks that the match is
// still live (the end timer may have won the race), produces one weighted
// random event, and re-arms itself. Any inconsistency is absorbed silently;
// a timer callback must never take the process down.
func (e *Engine) generate(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	t, ok := e.timers[id]
	if !ok {
		return // stopped or ended while this timer was pending
	}
	m, ok := e.store.Get(id)
	if !ok || m.Status != types.StatusLive {
		return
	}

	team := e.randomTeamLocked()
	player := e.players[e.rnd.Intn(len(e.players))]
	r := e.rnd.Float64()
	switch {
	case r < goalWeight:
		e.goalLocked(id, team, player)
	case r < goalWeight+foulWeight:
		e.foulLocked(id, team, player)
	default:
		e.cardLocked(id, team, player)
	}

	t.event = time.AfterFunc(e.nextDelayLocked(), func() { e.generate(id) })
}

// goalLocked increments the scoring side and emits a goal event carrying the
// new score snapshot. Caller holds e.mu.
func (e *Engine) goalLocked(id string, team types.Team, player string) {
	updated, ok := e.store.Apply(id, func(m types.Match) types.Match {
		if team == types.TeamA {
			m.Score.A++
		} else {
			m.Score.B++
		}
		return m
	})
	if !ok {
		return
	}
	score := updated.Score
	e.emitLocked(id, types.MatchEvent{
		Type:      types.EventGoal,
		Timestamp: e.now(),
		MatchID:   id,
		Team:      team,
		Player:    player,
		Score:     &score,
		Details:   fmt.Sprintf("Goal scored by %s!", player),
	})
}

// cardLocked emits a card event with a random card type. No score change.
func (e *Engine) cardLocked(id string, team types.Team, player string) {
	card := e.cards[e.rnd.Intn(len(e.cards))]
	e.emitLocked(id, types.MatchEvent{
		Type:      types.EventCard,
		Timestamp: e.now(),
		MatchID:   id,
		Team:      team,
		Player:    player,
		Details:   fmt.Sprintf("%s for %s", card, player),
	})
}

// foulLocked emits a foul event with a random foul type. No score change.
func (e *Engine) foulLocked(id string, team types.Team, player string) {
	foul := e.fouls[e.rnd.Intn(len(e.fouls))]
	e.emitLocked(id, types.MatchEvent{
		Type:      types.EventFoul,
		Timestamp: e.now(),
		MatchID:   id,
		Team:      team,
		Player:    player,
		Details:   fmt.Sprintf("%s by %s", foul, player),
	})
}

func (e *Engine) randomTeamLocked() types.Team {
	if e.rnd.Intn(2) == 0 {
		return types.TeamA
	}
	return types.TeamB
}

// nextDelayLocked draws a uniform delay from [minDelay, maxDelay].
func (e *Engine) nextDelayLocked() time.Duration {
	spread := e.maxDelay - e.minDelay
	if spread <= 0 {
		return e.minDelay
	}
	return e.minDelay + time.Duration(e.rnd.Int63n(int64(spread)+1))
}
