package ui

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"namecorrector/domain/core"
	"namecorrector/internal/errors"
	"namecorrector/models"
)

const (
	sessionCookie = "session_id"
	sessionKey    = "session"
)

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())
	s.router.Use(s.loadSession())

	staticFS, err := fs.Sub(s.assets, "ui/static")
	if err != nil {
		return errors.Wrap(err, "failed to open static assets")
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// requestLogger logs one line per request at DEBUG, errors at WARN
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			s.logger.Warn("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Millisecond))
			return
		}
		s.logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Millisecond))
	}
}

// loadSession attaches the caller's live session, if any, to the context
func (s *Server) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(sessionCookie)
		if err == nil {
			if id, err := core.ParseSessionID(raw); err == nil {
				if sess, err := s.sessions.GetSession(c.Request.Context(), id); err == nil {
					c.Set(sessionKey, sess)
				}
			}
		}
		c.Next()
	}
}

// currentSession returns the session loaded by the middleware
func currentSession(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*models.Session)
	return sess, ok
}

// ensureSession returns the current session or starts one and sets its cookie
func (s *Server) ensureSession(c *gin.Context) (*models.Session, error) {
	if sess, ok := currentSession(c); ok {
		return sess, nil
	}
	sess, err := s.sessions.CreateSession(c.Request.Context())
	if err != nil {
		return nil, err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID.String(), 0, "/", "", false, true)
	c.Set(sessionKey, sess)
	return sess, nil
}
