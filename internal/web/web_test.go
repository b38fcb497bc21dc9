package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/calegray/laurel/internal/achievement"
	"github.com/calegray/laurel/internal/auth"
	"github.com/calegray/laurel/internal/config"
	"github.com/calegray/laurel/internal/content"
	"github.com/calegray/laurel/internal/store"
	"github.com/calegray/laurel/internal/testutil"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubMailer struct {
	sent []string
	fail bool
}

func (m *stubMailer) SendContact(name, email, body string) error {
	if m.fail {
		return errAlways
	}
	m.sent = append(m.sent, email)
	return nil
}

var errAlways = errors.New("relay down")

type testServer struct {
	*Server
	store     *store.Store
	sessions  *SessionManager
	scheduler *testutil.ManualScheduler
	mailer    *stubMailer
}

// newTestServer builds a server over a throwaway database with a fixed
// clock and manual timers. withTemplates loads the real template set for
// handlers that render HTML.
func newTestServer(t *testing.T, withTemplates bool) *testServer {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	authSvc, err := auth.NewService("hunter2")
	require.NoError(t, err)

	sched := testutil.NewManualScheduler()
	sessions := NewSessionManager(st, achievement.DefaultCatalog(), sched, "test-secret", "hireme")
	sessions.now = func() time.Time { return fixedNow }
	t.Cleanup(sessions.Close)

	mailer := &stubMailer{}
	resolver := content.NewResolver(st.Content(), content.MustDefaults())

	glob := ""
	if withTemplates {
		glob = filepath.Join("..", "..", "templates", "*")
	}
	cfg := config.Config{
		Addr:              ":0",
		Mode:              gin.TestMode,
		AdminPassword:     "hunter2",
		AchievementSecret: "test-secret",
		SecretPhrase:      "hireme",
	}
	srv := New(cfg, st, resolver, sessions, authSvc, mailer, glob)

	return &testServer{
		Server:    srv,
		store:     st,
		sessions:  sessions,
		scheduler: sched,
		mailer:    mailer,
	}
}

// do performs a request against the router, carrying cookies along.
func (ts *testServer) do(t *testing.T, method, target string, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[") {
		req.Header.Set("Content-Type", "application/json")
	} else if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func visitorCookieFor(id string) *http.Cookie {
	return &http.Cookie{Name: visitorCookieName, Value: id}
}
