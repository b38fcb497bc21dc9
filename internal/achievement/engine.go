package achievement

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrUnknownAchievement is returned by Unlock for IDs outside the catalog.
var ErrUnknownAchievement = errors.New("unknown achievement id")

// UnlockResult reports the outcome of an Unlock call.
type UnlockResult int

const (
	// ResultUnlocked means the achievement transitioned LOCKED -> UNLOCKED.
	ResultUnlocked UnlockResult = iota
	// ResultAlreadyUnlocked means the call was an idempotent no-op.
	ResultAlreadyUnlocked
)

func (r UnlockResult) String() string {
	switch r {
	case ResultUnlocked:
		return "unlocked"
	case ResultAlreadyUnlocked:
		return "already_unlocked"
	default:
		return fmt.Sprintf("UnlockResult(%d)", int(r))
	}
}

// NotificationSink receives display-layer callbacks from the engine.
// Calls are fire-and-forget; the engine ignores whatever the sink does.
type NotificationSink interface {
	// AchievementUnlocked is called once per newly unlocked achievement.
	AchievementUnlocked(def Definition)
	// AllCompleted is called exactly once, on the transition into the
	// all-unlocked state. Never re-fired for sessions that load complete.
	AllCompleted()
}

// NopSink is a NotificationSink that discards everything.
type NopSink struct{}

func (NopSink) AchievementUnlocked(Definition) {}
func (NopSink) AllCompleted()                  {}

// Status pairs a catalog definition with its runtime unlock state.
type Status struct {
	Definition
	Unlocked   bool  `json:"unlocked"`
	UnlockedAt int64 `json:"unlockedAt,omitempty"` // epoch millis, zero if locked
}

// Engine owns the runtime achievement state for a single visitor session.
//
// All state lives behind one mutex, so detector callbacks arriving from
// concurrent HTTP handlers see unlock processing as atomic. Each achievement
// is independent; unlock order only affects notification order.
type Engine struct {
	mu       sync.Mutex
	catalog  *Catalog
	persist  *Persister
	sink     NotificationSink
	now      func() time.Time
	unlocked map[string]bool
	record   Record
	complete bool
	started  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithNow overrides the engine's clock. Tests use this to stamp unlocks
// deterministically.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine over the given catalog, persister, and sink.
// A nil sink is replaced by NopSink. Call Start before Unlock.
func New(catalog *Catalog, persist *Persister, sink NotificationSink, opts ...Option) *Engine {
	if sink == nil {
		sink = NopSink{}
	}
	e := &Engine{
		catalog:  catalog,
		persist:  persist,
		sink:     sink,
		now:      time.Now,
		unlocked: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start seeds the runtime state from the persisted record.
// A record that fails validation has already been discarded by the
// persister, so Start always succeeds; calling it twice is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true

	e.record = e.persist.Load()
	for _, id := range e.record.UnlockedIDs {
		// IDs retired from the catalog are carried in the record but not
		// reflected in runtime state.
		if e.catalog.Contains(id) {
			e.unlocked[id] = true
		}
	}
	// Completion recognised on load does not replay the celebration.
	e.complete = e.record.Completed

	slog.Debug("achievement engine started",
		"unlocked", len(e.unlocked),
		"complete", e.complete,
	)
}

// Stop releases the engine. The persisted record is already current (every
// unlock saves), so Stop only marks the engine unusable.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.started = false
}

// Unlock transitions an achievement to UNLOCKED, persists the record, and
// notifies the sink. Re-unlocking is an idempotent no-op.
func (e *Engine) Unlock(id string) (UnlockResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	def, ok := e.catalog.Lookup(id)
	if !ok {
		return ResultAlreadyUnlocked, fmt.Errorf("%w: %s", ErrUnknownAchievement, id)
	}
	if e.unlocked[id] {
		return ResultAlreadyUnlocked, nil
	}

	e.unlocked[id] = true
	e.record.UnlockedIDs = append(e.record.UnlockedIDs, id)
	e.record.Timestamps = append(e.record.Timestamps, StampedUnlock{
		ID:         id,
		UnlockedAt: e.now().UnixMilli(),
	})

	justCompleted := !e.complete && e.allUnlocked()
	if justCompleted {
		e.complete = true
		e.record.Completed = true
	}

	// Persistence failures degrade to in-memory state: the visitor keeps
	// playing, the record simply does not survive the session.
	if err := e.persist.Save(e.record); err != nil {
		slog.Warn("achievement save failed", "id", id, "error", err)
	}

	slog.Info("achievement unlocked", "id", id, "name", def.Name, "complete", e.complete)

	e.sink.AchievementUnlocked(def)
	if justCompleted {
		e.sink.AllCompleted()
	}

	return ResultUnlocked, nil
}

// IsUnlocked reports the runtime unlock flag for id.
func (e *Engine) IsUnlocked(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unlocked[id]
}

// Completed reports whether every catalog achievement is unlocked.
func (e *Engine) Completed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.complete
}

// UnlockedCount returns the number of unlocked achievements.
func (e *Engine) UnlockedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.unlocked)
}

// Snapshot returns the per-achievement state in catalog order.
// This is what the UI renders.
func (e *Engine) Snapshot() []Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	stampFor := make(map[string]int64, len(e.record.Timestamps))
	for _, ts := range e.record.Timestamps {
		stampFor[ts.ID] = ts.UnlockedAt
	}

	out := make([]Status, 0, e.catalog.Size())
	for _, def := range e.catalog.Definitions() {
		out = append(out, Status{
			Definition: def,
			Unlocked:   e.unlocked[def.ID],
			UnlockedAt: stampFor[def.ID],
		})
	}
	return out
}

// allUnlocked reports whether runtime state covers the whole catalog.
// Caller must hold e.mu.
func (e *Engine) allUnlocked() bool {
	for _, id := range e.catalog.IDs() {
		if !e.unlocked[id] {
			return false
		}
	}
	return true
}
