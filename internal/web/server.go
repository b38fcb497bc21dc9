// Package web serves the site: public pages, the achievement event API,
// and the admin area.
package web

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calegray/laurel/internal/auth"
	"github.com/calegray/laurel/internal/config"
	"github.com/calegray/laurel/internal/content"
	"github.com/calegray/laurel/internal/mail"
	"github.com/calegray/laurel/internal/store"
)

// Server bundles the site's handlers and their dependencies.
type Server struct {
	cfg      config.Config
	store    *store.Store
	content  *content.Resolver
	sessions *SessionManager
	auth     *auth.Service
	mailer   mail.Mailer
	router   *gin.Engine
}

// New builds the server and its routes. Templates are loaded from
// templatesGlob when it matches anything, so API-only tests can run
// without the template directory.
func New(cfg config.Config, st *store.Store, resolver *content.Resolver, sessions *SessionManager, authSvc *auth.Service, mailer mail.Mailer, templatesGlob string) *Server {
	gin.SetMode(cfg.Mode)

	s := &Server{
		cfg:      cfg,
		store:    st,
		content:  resolver,
		sessions: sessions,
		auth:     authSvc,
		mailer:   mailer,
		router:   gin.New(),
	}
	s.router.Use(gin.Recovery())
	if templatesGlob != "" {
		s.router.LoadHTMLGlob(templatesGlob)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.visitorCookie())
	r.Use(s.trackVisitors())

	r.Static("/static", "./static")

	// Public pages.
	r.GET("/", s.handleIndex)
	r.GET("/work-content", s.handleWorkContent)
	r.GET("/education-content", s.handleEducationContent)
	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.handleContactSubmit)

	// Achievement API consumed by the page script.
	api := r.Group("/api")
	api.POST("/events", s.handleEvents)
	api.GET("/achievements", s.handleAchievements)

	// Admin area.
	r.GET("/admin/login", s.handleAdminLoginPage)
	r.POST("/admin/login", s.handleAdminLogin)
	r.POST("/admin/logout", s.handleAdminLogout)

	admin := r.Group("/admin/api", s.requireAdmin())
	admin.GET("/stats", s.handleAdminStats)
	admin.GET("/messages", s.handleAdminMessages)
	admin.DELETE("/messages/:id", s.handleAdminDeleteMessage)
	admin.POST("/visitors/cleanup", s.handleAdminVisitorCleanup)
	admin.GET("/content/:type", s.handleAdminListContent)
	admin.POST("/content/:type/:id", s.handleAdminCreateContent)
	admin.PUT("/content/:type/:id", s.handleAdminUpdateContent)
	admin.DELETE("/content/:type/:id", s.handleAdminDeleteContent)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	slog.Info("serving", "addr", s.cfg.Addr)
	return s.router.Run(s.cfg.Addr)
}
