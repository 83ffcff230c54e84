// Package ui serves the single-page spreadsheet correction interface.
package ui

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"namecorrector/internal"
	"namecorrector/internal/dataset"
	"namecorrector/internal/errors"
	"namecorrector/internal/i18n"
	"namecorrector/ports"
)

// DefaultPreviewRows is how many table rows the page shows
const DefaultPreviewRows = 20

// Dependencies are the services the UI is wired to
type Dependencies struct {
	Processor      *dataset.Processor
	Sessions       ports.SessionRepository
	Labels         *i18n.Labels
	Logger         *internal.Logger
	MaxUploadBytes int64
	PreviewRows    int
}

// Server represents the web server for the correction UI
type Server struct {
	router      *gin.Engine
	assets      fs.FS
	templates   *template.Template
	intro       template.HTML
	processor   *dataset.Processor
	sessions    ports.SessionRepository
	labels      *i18n.Labels
	logger      *internal.Logger
	maxUpload   int64
	previewRows int
}

// NewServer parses templates and intro copy from assets, which must hold
// ui/templates, ui/static and ui/content
func NewServer(assets fs.FS, deps Dependencies) (*Server, error) {
	if deps.Processor == nil || deps.Sessions == nil || deps.Labels == nil {
		return nil, errors.ConfigInvalid("ui server requires a processor, a session store and labels")
	}
	if deps.Logger == nil {
		deps.Logger = internal.DefaultLogger
	}
	if deps.PreviewRows <= 0 {
		deps.PreviewRows = DefaultPreviewRows
	}

	s := &Server{
		router:      gin.New(),
		assets:      assets,
		processor:   deps.Processor,
		sessions:    deps.Sessions,
		labels:      deps.Labels,
		logger:      deps.Logger.With("UI"),
		maxUpload:   deps.MaxUploadBytes,
		previewRows: deps.PreviewRows,
	}

	if err := s.loadTemplates(); err != nil {
		return nil, err
	}
	s.intro = renderIntro(assets, s.labels.Lang())

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/upload", s.handleUpload)
	s.router.POST("/correct", s.handleCorrect)
	s.router.GET("/download", s.handleDownload)
	s.router.GET("/status", s.handleStatus)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Handler exposes the router for http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer wraps the router in an http.Server listening on :port. There is
// no write timeout: a correction run answers only when every row is done.
func (s *Server) HTTPServer(port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
