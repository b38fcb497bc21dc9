package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calegray/laurel/internal/auth"
	"github.com/calegray/laurel/internal/content"
	"github.com/calegray/laurel/internal/store"
)

// adminCookieMaxAge matches the auth session TTL.
const adminCookieMaxAge = 24 * 60 * 60

func (s *Server) handleAdminLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin-login.html", gin.H{})
}

func (s *Server) handleAdminLogin(c *gin.Context) {
	if s.cfg.AdminPassword == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin login disabled"})
		return
	}
	token, err := s.auth.Login(c.PostForm("password"))
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "bad credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.SetCookie(adminCookieName, token, adminCookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleAdminLogout(c *gin.Context) {
	if token, err := c.Cookie(adminCookieName); err == nil {
		s.auth.Logout(token)
	}
	c.SetCookie(adminCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleAdminStats(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := s.store.Visitors().Stats(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	recent, err := s.store.Visitors().Recent(ctx, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	messages, err := s.store.Messages().Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"visitors":        stats,
		"recent_visitors": recent,
		"message_count":   messages,
	})
}

func (s *Server) handleAdminMessages(c *gin.Context) {
	msgs, err := s.store.Messages().List(c.Request.Context(), 200)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "messages unavailable"})
		return
	}
	if msgs == nil {
		msgs = []store.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (s *Server) handleAdminDeleteMessage(c *gin.Context) {
	err := s.store.Messages().Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrMessageNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleAdminVisitorCleanup(c *gin.Context) {
	deleted, err := s.store.Visitors().CleanupExpired(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Content CRUD. Payloads are opaque JSON; the site renders whatever
// fields the templates know about.

func (s *Server) contentType(c *gin.Context) (string, bool) {
	entityType := c.Param("type")
	if !content.ValidType(entityType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown content type"})
		return "", false
	}
	return entityType, true
}

func (s *Server) handleAdminListContent(c *gin.Context) {
	entityType, ok := s.contentType(c)
	if !ok {
		return
	}
	docs, err := s.store.Content().List(c.Request.Context(), entityType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "content unavailable"})
		return
	}
	if docs == nil {
		docs = []content.Document{}
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (s *Server) readPayload(c *gin.Context) ([]byte, bool) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil || len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing payload"})
		return nil, false
	}
	if !json.Valid(payload) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload is not valid JSON"})
		return nil, false
	}
	return payload, true
}

func (s *Server) handleAdminCreateContent(c *gin.Context) {
	entityType, ok := s.contentType(c)
	if !ok {
		return
	}
	payload, ok := s.readPayload(c)
	if !ok {
		return
	}
	if err := s.store.Content().Create(c.Request.Context(), entityType, c.Param("id"), payload); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (s *Server) handleAdminUpdateContent(c *gin.Context) {
	entityType, ok := s.contentType(c)
	if !ok {
		return
	}
	payload, ok := s.readPayload(c)
	if !ok {
		return
	}
	err := s.store.Content().Update(c.Request.Context(), entityType, c.Param("id"), payload)
	if errors.Is(err, content.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleAdminDeleteContent(c *gin.Context) {
	entityType, ok := s.contentType(c)
	if !ok {
		return
	}
	err := s.store.Content().Delete(c.Request.Context(), entityType, c.Param("id"))
	if errors.Is(err, content.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
