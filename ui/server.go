package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"strbrowser/internal"
	"strbrowser/internal/dataset"
	"strbrowser/internal/session"
	"strbrowser/ui/middleware"

	"github.com/gin-gonic/gin"
)

// Server is the dashboard web server
type Server struct {
	router        *gin.Engine
	catalog       *dataset.Catalog
	sessions      *session.Manager
	queries       queries
	templates     *template.Template
	embeddedFiles fs.FS
	logger        *internal.Logger
}

// NewServer creates a new web server instance. embeddedFiles must contain ui/templates and
// ui/static.
func NewServer(embeddedFiles fs.FS, sessions *session.Manager, logger *internal.Logger) *Server {
	return &Server{
		router:        gin.Default(),
		catalog:       sessions.Catalog(),
		sessions:      sessions,
		queries:       queries{catalog: sessions.Catalog()},
		embeddedFiles: embeddedFiles,
		logger:        logger,
	}
}

// Initialize parses the templates and registers middleware and routes
func (s *Server) Initialize() error {
	templatesFS, err := fs.Sub(s.embeddedFiles, "ui/templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	files1, err := fs.Glob(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to glob root templates: %w", err)
	}
	files2, err := fs.Glob(templatesFS, "*/*.html")
	if err != nil {
		return fmt.Errorf("failed to glob nested templates: %w", err)
	}
	files := append(files1, files2...)
	s.logger.Debug("[TemplateInit] Found %d template files: %v", len(files), files)

	s.templates = template.New("").Funcs(newFuncMap())
	for _, file := range files {
		content, err := fs.ReadFile(templatesFS, file)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", file, err)
		}
		if _, err := s.templates.New(file).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}

	if err := s.setupMiddleware(); err != nil {
		return err
	}
	s.setupRoutes()
	return nil
}

func (s *Server) setupMiddleware() error {
	staticFS, err := fs.Sub(s.embeddedFiles, "ui/static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealthz)

	// Dashboard pages and HTMX fragments, bound to the browser session
	dash := s.router.Group("/", middleware.Sessions(s.sessions, s.logger))
	dash.GET("/", s.handleIndex)
	dash.GET("/panels", s.handlePanels)
	dash.POST("/selection", s.handleSelection)
	dash.GET("/table", s.handleTable)
	dash.GET("/export.xlsx", s.handleExportXLSX)
	dash.GET("/export.tsv", s.handleExportTSV)

	// Stateless JSON API
	api := s.router.Group("/api")
	api.GET("/diseases", s.handleAPIDiseases)
	api.GET("/alleles", s.handleAPIAlleles)
	api.GET("/motifs", s.handleAPIMotifs)
	api.GET("/summary", s.handleAPISummary)
	api.GET("/histogram", s.handleAPIHistogram)
	api.GET("/heatmap", s.handleAPIHeatmap)
	api.GET("/table", s.handleAPITable)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("[Dashboard] Starting STR browser on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"catalog":  s.catalog.Stats(),
		"sessions": s.sessions.Len(),
	})
}
