// Package achievement implements the easter-egg achievement engine.
//
// The engine tracks a fixed catalog of achievements per visitor. Gesture
// detectors (package detector) call Unlock when they recognise a behaviour;
// the engine deduplicates unlocks, stamps them, persists the signed record,
// and notifies the UI sink.
//
// State model:
//
// Per achievement: LOCKED -> UNLOCKED. One-way, no re-lock.
// Globally: INCOMPLETE -> COMPLETE once every catalog entry is unlocked.
// COMPLETE is sticky across restarts; only the transition into it fires the
// completion notification.
//
// The persisted record carries a rolling-hash signature and per-unlock
// timestamps. On load the signature is recomputed and the timestamps are
// checked for plausibility; any mismatch discards the whole record and the
// visitor starts clean. The signature deters casual edits of the stored
// state - it is tamper evidence, not a cryptographic boundary, since the
// key ships with the application.
//
// All mutation goes through Engine methods behind a single mutex, so unlock
// handling is atomic with respect to concurrent detector callbacks.
package achievement
