// Package hub fans out match events to live subscribers and replays history
// to late joiners.
//
// Each subscriber owns a buffered delivery channel; the hub is its only
// writer. Subscribe snapshots the match's event log and registers the
// subscriber in one critical section, and every published event carries its
// log sequence number, so a subscriber sees each event exactly once: either
// in the replay or as a live push, never both, never neither. A subscriber
// whose channel is full is dropped rather than allowed to block the
// publisher or starve its siblings.
package hub
