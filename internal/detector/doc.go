// Package detector implements the gesture detectors that feed the
// achievement engine.
//
// The browser streams raw gesture events (keys, clicks, scroll positions,
// accelerometer samples) to the server; each detector folds that stream
// independently and calls its trigger callback once per recognised episode.
// Detectors never talk to each other and hold no shared state - dedup
// against re-unlocking happens in the engine, not here.
//
// Time handling: windows the client can observe (click windows, cooldowns,
// the double-tap gap, motion sampling) are computed from the client-supplied
// event timestamps, which keeps detection deterministic under network jitter
// and trivially testable. Only the elapsed-time detector needs wall time; it
// owns a cancellable timer obtained from a Scheduler.
package detector
