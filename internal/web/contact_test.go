package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactForm(name, email, message string) string {
	return url.Values{
		"fullName": {name},
		"email":    {email},
		"message":  {message},
	}.Encode()
}

func TestContactSubmit_StoresAndEmails(t *testing.T) {
	ts := newTestServer(t, true)

	w := ts.do(t, http.MethodPost, "/contact", contactForm("Recruiter", "recruiter@example.com", "Hello"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you")

	assert.Equal(t, []string{"recruiter@example.com"}, ts.mailer.sent)

	msgs, err := ts.store.Messages().List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Recruiter", msgs[0].Name)
	assert.True(t, msgs[0].Emailed)
}

func TestContactSubmit_RelayDownStillStores(t *testing.T) {
	ts := newTestServer(t, true)
	ts.mailer.fail = true

	w := ts.do(t, http.MethodPost, "/contact", contactForm("Recruiter", "recruiter@example.com", "Hello"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you", "stored message still counts as received")

	msgs, err := ts.store.Messages().List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].Emailed)
}

func TestContactSubmit_RejectsEmptyFields(t *testing.T) {
	ts := newTestServer(t, true)

	w := ts.do(t, http.MethodPost, "/contact", contactForm("", "recruiter@example.com", "Hello"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please fill in")

	msgs, err := ts.store.Messages().List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestContactSubmit_RejectsBadEmail(t *testing.T) {
	ts := newTestServer(t, true)

	w := ts.do(t, http.MethodPost, "/contact", contactForm("Name", "not-an-email", "Hello"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "valid submission")
}

func TestPages_RenderDefaults(t *testing.T) {
	ts := newTestServer(t, true)

	w := ts.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cale Gray")

	w = ts.do(t, http.MethodGet, "/work-content", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/education-content", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/contact-form", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fullName")
}

func TestTrackVisitors_RespectsDoNotTrack(t *testing.T) {
	ts := newTestServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	stats, err := ts.store.Visitors().Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
}
