package web

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calegray/laurel/internal/achievement"
	"github.com/calegray/laurel/internal/detector"
	"github.com/calegray/laurel/internal/store"
	"github.com/calegray/laurel/internal/testutil"
)

func newTestManager(t *testing.T) (*SessionManager, *testutil.ManualScheduler, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sched := testutil.NewManualScheduler()
	m := NewSessionManager(st, achievement.DefaultCatalog(), sched, "test-secret", "hireme")
	m.now = func() time.Time { return fixedNow }
	t.Cleanup(m.Close)
	return m, sched, st
}

func TestSessionManager_UnlockSurvivesEviction(t *testing.T) {
	m, _, _ := newTestManager(t)

	notes := m.HandleEvents("visitor-1", konamiEvents(1000))
	require.Len(t, notes, 1)

	m.Evict("visitor-1")

	// Rebuilt from the store, without replaying the unlock notification.
	snapshot, completed, notes := m.Snapshot("visitor-1")
	assert.Empty(t, notes)
	assert.False(t, completed)

	var konami achievement.Status
	for _, st := range snapshot {
		if st.ID == "konami" {
			konami = st
		}
	}
	assert.True(t, konami.Unlocked)
	assert.Equal(t, fixedNow.UnixMilli(), konami.UnlockedAt)
}

func TestSessionManager_EvictCancelsDwellTimer(t *testing.T) {
	m, sched, _ := newTestManager(t)

	m.Snapshot("visitor-1")
	require.Equal(t, 1, sched.Pending(), "session arms the dwell timer")

	m.Evict("visitor-1")
	assert.Equal(t, 0, sched.Pending())

	// Firing after eviction must not resurrect anything.
	sched.Advance(180 * time.Second)
	_, _, notes := m.Snapshot("visitor-1")
	assert.Empty(t, notes)
}

func TestSessionManager_IdleSessionsAreSwept(t *testing.T) {
	m, sched, _ := newTestManager(t)

	current := fixedNow
	m.now = func() time.Time { return current }

	m.Snapshot("idle-visitor")
	require.Equal(t, 1, sched.Pending())

	current = current.Add(sessionIdleTTL + time.Minute)
	m.Snapshot("other-visitor")

	// The idle visitor's detectors are gone; only the new session's dwell
	// timer remains.
	assert.Equal(t, 1, sched.Pending())
	m.mu.Lock()
	_, stillThere := m.sessions["idle-visitor"]
	m.mu.Unlock()
	assert.False(t, stillThere)
}

func TestSessionManager_TamperedRecordResets(t *testing.T) {
	m, _, st := newTestManager(t)

	m.HandleEvents("visitor-1", konamiEvents(1000))
	m.Evict("visitor-1")

	// Forge an extra unlock without fixing the signature.
	kv := st.AchievementStorage("visitor-1")
	require.NoError(t, kv.Set("unlockedAchievements", `["konami","hacker"]`))

	snapshot, _, _ := m.Snapshot("visitor-1")
	for _, status := range snapshot {
		assert.False(t, status.Unlocked, "tampered record resets %s", status.ID)
	}

	// The stored record is cleared, not just ignored.
	_, ok, err := kv.Get("unlockedAchievements")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionManager_CompletionNotifiesOnce(t *testing.T) {
	m, sched, _ := newTestManager(t)

	all := [][]detector.Event{
		konamiEvents(1000),
		{
			{Kind: detector.KindClick, Timestamp: 20000},
			{Kind: detector.KindClick, Timestamp: 20100},
			{Kind: detector.KindClick, Timestamp: 20200},
		},
		typedEvents("hireme", 30000),
		{{Kind: detector.KindScroll, Timestamp: 40000, ScrollTop: 30000, DocHeight: 31000, ViewHeight: 900}},
		{
			{Kind: detector.KindMotion, Timestamp: 50000, AccelX: 0, AccelY: 0, AccelZ: 0},
			{Kind: detector.KindMotion, Timestamp: 50150, AccelX: 40, AccelY: 40, AccelZ: 40},
		},
		{
			{Kind: detector.KindTouchEnd, Timestamp: 60000},
			{Kind: detector.KindTouchEnd, Timestamp: 60150},
		},
	}

	var notes []Notification
	for _, batch := range all {
		notes = append(notes, m.HandleEvents("visitor-1", batch)...)
	}
	sched.Advance(180 * time.Second)
	_, completed, rest := m.Snapshot("visitor-1")
	notes = append(notes, rest...)

	require.True(t, completed)

	var completions int
	var unlocks int
	for _, n := range notes {
		switch n.Type {
		case "complete":
			completions++
		case "unlock":
			unlocks++
		}
	}
	assert.Equal(t, 7, unlocks)
	assert.Equal(t, 1, completions)
}

func typedEvents(phrase string, start int64) []detector.Event {
	events := make([]detector.Event, 0, len(phrase))
	for i, r := range phrase {
		events = append(events, detector.Event{
			Kind:      detector.KindKey,
			Timestamp: start + int64(i)*100,
			Key:       string(r),
		})
	}
	return events
}

func TestSessionManager_HTTPRoundTripSharesSession(t *testing.T) {
	ts := newTestServer(t, false)
	visitor := visitorCookieFor("visitor-1")

	ts.do(t, http.MethodPost, "/api/events", eventsBody(t, konamiEvents(1000)), visitor)

	// A second request with the same cookie sees the same session state.
	w := ts.do(t, http.MethodGet, "/api/achievements", "", visitor)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unlockedCount":1`)
}
