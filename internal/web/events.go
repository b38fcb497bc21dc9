package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calegray/laurel/internal/detector"
)

// maxEventBatch caps one POST; the page script batches at most a few
// dozen events per flush.
const maxEventBatch = 256

type eventsRequest struct {
	Events []detector.Event `json:"events"`
}

type eventsResponse struct {
	Notifications []Notification `json:"notifications"`
	UnlockedCount int            `json:"unlockedCount"`
	Total         int            `json:"total"`
	Completed     bool           `json:"completed"`
}

// handleEvents ingests a batch of browser interaction events and returns
// whatever the detectors unlocked.
func (s *Server) handleEvents(c *gin.Context) {
	var req eventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event batch"})
		return
	}
	if len(req.Events) > maxEventBatch {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event batch too large"})
		return
	}

	id := visitorID(c)
	notifications := s.sessions.HandleEvents(id, req.Events)
	snapshot, completed, late := s.sessions.Snapshot(id)
	notifications = append(notifications, late...)

	unlocked := 0
	for _, st := range snapshot {
		if st.Unlocked {
			unlocked++
		}
	}

	if notifications == nil {
		notifications = []Notification{}
	}
	c.JSON(http.StatusOK, eventsResponse{
		Notifications: notifications,
		UnlockedCount: unlocked,
		Total:         len(snapshot),
		Completed:     completed,
	})
}

type achievementsResponse struct {
	Achievements  []statusView   `json:"achievements"`
	Notifications []Notification `json:"notifications"`
	UnlockedCount int            `json:"unlockedCount"`
	Total         int            `json:"total"`
	Completed     bool           `json:"completed"`
}

type statusView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	UnlockedAt  int64  `json:"unlockedAt,omitempty"`
}

// handleAchievements returns the visitor's full achievement panel state.
// Pending notifications ride along so dwell-timer unlocks reach the page
// without a second poll.
func (s *Server) handleAchievements(c *gin.Context) {
	id := visitorID(c)
	snapshot, completed, notifications := s.sessions.Snapshot(id)

	views := make([]statusView, 0, len(snapshot))
	unlocked := 0
	for _, st := range snapshot {
		if st.Unlocked {
			unlocked++
		}
		views = append(views, statusView{
			ID:          st.ID,
			Name:        st.Name,
			Description: st.Description,
			Icon:        st.Icon,
			Unlocked:    st.Unlocked,
			UnlockedAt:  st.UnlockedAt,
		})
	}

	if notifications == nil {
		notifications = []Notification{}
	}
	c.JSON(http.StatusOK, achievementsResponse{
		Achievements:  views,
		Notifications: notifications,
		UnlockedCount: unlocked,
		Total:         len(views),
		Completed:     completed,
	})
}
