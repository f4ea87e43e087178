package types

import "time"

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	// StatusScheduled means the match exists but has not started.
	StatusScheduled MatchStatus = "scheduled"
	// StatusLive means the match is in progress and generating events.
	StatusLive MatchStatus = "live"
	// StatusEnded means the match finished; no further events are accepted.
	StatusEnded MatchStatus = "ended"
)

// Team identifies one of the two sides of a match.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// Score is the current goal tally for both sides.
type Score struct {
	// Goals for the home side (team A).
	// example: 2
	A int `json:"a" example:"2"`
	// Goals for the away side (team B).
	// example: 1
	B int `json:"b" example:"1"`
}

// Match represents one tracked contest between two named sides.
type Match struct {
	// Stable identifier for the match.
	// example: 4a1f0b6e-6b7c-4b3e-9a2d-1f0c9d8e7a65
	ID string `json:"id" example:"4a1f0b6e-6b7c-4b3e-9a2d-1f0c9d8e7a65"`
	// Home side name.
	// example: Real Madrid
	TeamA string `json:"teamA" example:"Real Madrid"`
	// Away side name.
	// example: Barcelona
	TeamB string `json:"teamB" example:"Barcelona"`
	// Current score.
	Score Score `json:"score"`
	// Lifecycle status (scheduled, live, ended).
	// example: live
	Status MatchStatus `json:"status" example:"live"`
	// Kickoff time; set once the match goes live.
	StartedAt *time.Time `json:"startedAt,omitempty"`
	// Final whistle time; set once the match ends.
	EndedAt *time.Time `json:"endedAt,omitempty"`
}

// EventType discriminates the kinds of match events.
type EventType string

const (
	EventMatchStarted EventType = "match_started"
	EventGoal         EventType = "goal"
	EventCard         EventType = "card"
	EventFoul         EventType = "foul"
	EventMatchEnded   EventType = "match_ended"
)

// MatchEvent is an immutable, timestamped fact appended to a match's history.
// Only the fields meaningful to the event type are populated: a goal carries
// team, player and the score snapshot after the goal; cards and fouls carry
// team, player and a detail string; match_started carries nothing extra and
// match_ended carries the final score.
type MatchEvent struct {
	// Event kind (match_started, goal, card, foul, match_ended).
	// example: goal
	Type EventType `json:"type" example:"goal"`
	// Time the event was produced.
	Timestamp time.Time `json:"timestamp"`
	// Match this event belongs to.
	// example: 4a1f0b6e-6b7c-4b3e-9a2d-1f0c9d8e7a65
	MatchID string `json:"matchId" example:"4a1f0b6e-6b7c-4b3e-9a2d-1f0c9d8e7a65"`
	// Side the event is attributed to, if any.
	// example: A
	Team Team `json:"team,omitempty" example:"A"`
	// Player the event is attributed to, if any.
	// example: Bekele
	Player string `json:"player,omitempty" example:"Bekele"`
	// Score snapshot; present on goals and on match_ended.
	Score *Score `json:"score,omitempty"`
	// Human-readable description.
	// example: Goal scored by Bekele!
	Details string `json:"details,omitempty" example:"Goal scored by Bekele!"`
}
