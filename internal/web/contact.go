package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/calegray/laurel/internal/store"
)

const contactBodyMax = 10000

// handleContactSubmit stores the submission first, then tries to email
// it. A down relay never loses a message; it just arrives unemailed in
// the admin inbox.
func (s *Server) handleContactSubmit(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("fullName"))
	email := strings.TrimSpace(c.PostForm("email"))
	body := strings.TrimSpace(c.PostForm("message"))

	if name == "" || email == "" || body == "" {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, email, and message.",
		})
		return
	}
	if !strings.Contains(email, "@") || len(body) > contactBodyMax {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, that doesn't look like a valid submission.",
		})
		return
	}

	emailErr := s.mailer.SendContact(name, email, body)
	if emailErr != nil {
		slog.Warn("contact email failed", "error", emailErr)
	}

	msg := store.Message{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Body:      body,
		Emailed:   emailErr == nil,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Messages().Insert(c.Request.Context(), msg); err != nil {
		slog.Error("contact message not stored", "error", err)
		if emailErr != nil {
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": "Sorry, there was an error sending your message. Please try again later.",
			})
			return
		}
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
