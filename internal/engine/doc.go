// Package engine owns the match lifecycle state machine and the timer-driven
// event generator. It is the only writer of match state and event logs. It
// is structured into small files by concern:
//
//   - engine.go: core Engine type, constructor, match CRUD facade.
//   - config.go: Config and package defaults; New applies defaults.
//   - lifecycle.go: StartMatch/StopMatch and the end-of-match transition.
//   - generate.go: randomized event generation while a match is live.
//   - errors.go: error types and helpers (IsMatchNotFound, IsInvalidTransition).
//   - events.go: Publisher interface consumed by the fan-out layer.
//
// Lifecycle is strictly scheduled -> live -> ended. While live, a match owns
// two timers: a one-shot "next event" timer that re-arms itself after every
// generated event, and a fixed-duration end-of-match timer. Both callbacks
// take the engine mutex and re-check match status before doing anything, so
// a timer that loses a race with the end transition silently drops out.
//
// External packages should treat this package as the orchestration layer and
// use public methods only (CreateMatch, StartMatch, StopMatch, ListMatches,
// GetMatch, MatchEvents, SeedMatches, Close).
package engine
