package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	visitorCookieName = "visitor_id"
	adminCookieName   = "admin_token"

	// visitorCookieMaxAge keeps the achievement state bound to a browser
	// for a year, matching the persistence retention window.
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// visitorCookie assigns every browser a stable random id. Achievement
// state is keyed on it, so clearing cookies resets progress the same way
// clearing local storage would.
func (s *Server) visitorCookie() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(visitorCookieName, id, visitorCookieMaxAge, "/", "", false, true)
		}
		c.Set(visitorCookieName, id)
		c.Next()
	}
}

// visitorID returns the id set by visitorCookie.
func visitorID(c *gin.Context) string {
	return c.GetString(visitorCookieName)
}

// trackVisitors records page views with a salted IP hash. Static assets,
// the API, the admin area, and Do Not Track browsers are skipped.
func (s *Server) trackVisitors() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/api/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/favicon") {
			c.Next()
			return
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashedIP := s.auth.HashIP(c.ClientIP())
		userAgent := c.GetHeader("User-Agent")
		// Recorded off the request path; gin recycles c once the handler
		// returns, so the goroutine gets its own context.
		go func() {
			if err := s.store.Visitors().Record(context.Background(), hashedIP, userAgent, path); err != nil {
				slog.Warn("visitor tracking failed", "error", err)
			}
		}()

		c.Next()
	}
}

// requireAdmin gates the admin API on a live session token.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookieName)
		if err != nil || !s.auth.Valid(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
