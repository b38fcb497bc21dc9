package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleIndex(c *gin.Context) {
	ctx := c.Request.Context()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"about":    s.content.About(ctx),
		"projects": s.content.Projects(ctx),
		"skills":   s.content.Skills(ctx),
	})
}

// handleWorkContent renders the work-history fragment swapped in by the
// page script.
func (s *Server) handleWorkContent(c *gin.Context) {
	c.HTML(http.StatusOK, "work-content.html", gin.H{
		"experience": s.content.Experience(c.Request.Context()),
	})
}

func (s *Server) handleEducationContent(c *gin.Context) {
	ctx := c.Request.Context()
	c.HTML(http.StatusOK, "education-content.html", gin.H{
		"education":      s.content.Education(ctx),
		"certifications": s.content.Certifications(ctx),
	})
}

func (s *Server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Contact Me",
	})
}
