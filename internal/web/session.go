package web

import (
	"log/slog"
	"sync"
	"time"

	"github.com/calegray/laurel/internal/achievement"
	"github.com/calegray/laurel/internal/detector"
	"github.com/calegray/laurel/internal/store"
)

// sessionIdleTTL bounds how long an inactive visitor keeps a live session.
// State survives eviction in the store; only the in-memory detectors and
// their pending timers are dropped.
const sessionIdleTTL = 30 * time.Minute

// Notification is one queued display event for the browser: an unlock
// toast or the all-complete celebration.
type Notification struct {
	Type        string                  `json:"type"` // "unlock" or "complete"
	Achievement *achievement.Definition `json:"achievement,omitempty"`
}

// notifyQueue buffers engine callbacks until the browser polls them.
// It has its own lock because the dwell timer fires from a goroutine
// outside any request.
type notifyQueue struct {
	mu      sync.Mutex
	pending []Notification
}

func (q *notifyQueue) AchievementUnlocked(def achievement.Definition) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, Notification{Type: "unlock", Achievement: &def})
}

func (q *notifyQueue) AllCompleted() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, Notification{Type: "complete"})
}

func (q *notifyQueue) drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// session is one visitor's live achievement state: the engine, the
// detector complement feeding it, and the undelivered notifications.
type session struct {
	mu        sync.Mutex
	engine    *achievement.Engine
	detectors *detector.Set
	queue     *notifyQueue
	lastSeen  time.Time
}

// SessionManager owns the per-visitor sessions, creating them lazily
// from persisted state and evicting them after idle timeout.
type SessionManager struct {
	mu       sync.Mutex
	store    *store.Store
	catalog  *achievement.Catalog
	sched    detector.Scheduler
	secret   string
	phrase   string
	sessions map[string]*session
	now      func() time.Time
}

// NewSessionManager wires sessions over the given store. secret keys the
// persisted-record signature; phrase is the typed secret cue.
func NewSessionManager(st *store.Store, catalog *achievement.Catalog, sched detector.Scheduler, secret, phrase string) *SessionManager {
	return &SessionManager{
		store:    st,
		catalog:  catalog,
		sched:    sched,
		secret:   secret,
		phrase:   phrase,
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// session returns the live session for a visitor, creating it from the
// persisted record on first contact. Also sweeps idle sessions.
func (m *SessionManager) session(visitorID string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, sess := range m.sessions {
		if id != visitorID && now.Sub(sess.lastSeen) > sessionIdleTTL {
			sess.detectors.Teardown()
			delete(m.sessions, id)
			slog.Debug("session evicted", "visitor", id)
		}
	}

	if sess, ok := m.sessions[visitorID]; ok {
		sess.lastSeen = now
		return sess
	}

	queue := &notifyQueue{}
	storage := m.store.AchievementStorage(visitorID)
	persist := achievement.NewPersister(storage, m.secret, m.catalog.Size(), m.now)
	engine := achievement.New(m.catalog, persist, queue, achievement.WithNow(m.now))
	engine.Start()

	sess := &session{
		engine:   engine,
		queue:    queue,
		lastSeen: now,
	}
	sess.detectors = detector.NewSet(m.sched, m.phrase, func(id string) {
		if _, err := engine.Unlock(id); err != nil {
			slog.Warn("detector unlock rejected", "id", id, "error", err)
		}
	})

	m.sessions[visitorID] = sess
	slog.Debug("session created", "visitor", visitorID, "unlocked", engine.UnlockedCount())
	return sess
}

// HandleEvents feeds a batch of browser events through the visitor's
// detectors and returns any notifications they produced.
func (m *SessionManager) HandleEvents(visitorID string, events []detector.Event) []Notification {
	sess := m.session(visitorID)

	// Detectors are not concurrent-safe; serialise per session.
	sess.mu.Lock()
	for _, ev := range events {
		sess.detectors.Handle(ev)
	}
	sess.mu.Unlock()

	return sess.queue.drain()
}

// Snapshot returns the visitor's per-achievement state plus any pending
// notifications (the dwell timer unlocks between polls).
func (m *SessionManager) Snapshot(visitorID string) ([]achievement.Status, bool, []Notification) {
	sess := m.session(visitorID)
	return sess.engine.Snapshot(), sess.engine.Completed(), sess.queue.drain()
}

// Evict drops a visitor's live session, cancelling pending timers. The
// next contact rebuilds it from the store.
func (m *SessionManager) Evict(visitorID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[visitorID]; ok {
		sess.detectors.Teardown()
		delete(m.sessions, visitorID)
	}
}

// Close tears down every live session.
func (m *SessionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sess := range m.sessions {
		sess.detectors.Teardown()
		delete(m.sessions, id)
	}
}
