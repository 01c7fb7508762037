package ui

import (
	"encoding/json"
	"net/http"

	"strbrowser/internal"
	"strbrowser/internal/dataset"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App is the read-only JSON API application served by cmd/api
type App struct {
	router  *chi.Mux
	queries queries
	logger  *internal.Logger
	port    string
}

// Config holds API application configuration
type Config struct {
	Port string
}

// NewApp creates the API application over a loaded catalog
func NewApp(catalog *dataset.Catalog, config Config, logger *internal.Logger) *App {
	app := &App{
		router:  chi.NewRouter(),
		queries: queries{catalog: catalog},
		logger:  logger,
		port:    config.Port,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "catalog": a.queries.catalog.Stats()})
	})

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/diseases", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, a.queries.diseases())
		})
		r.Get("/alleles", func(w http.ResponseWriter, r *http.Request) {
			rows, err := a.queries.alleles(r.URL.Query().Get("disease"))
			a.respond(w, r, rows, err)
		})
		r.Get("/motifs", func(w http.ResponseWriter, r *http.Request) {
			motifs, err := a.queries.motifs(r.URL.Query().Get("disease"))
			a.respond(w, r, motifs, err)
		})
		r.Get("/summary", func(w http.ResponseWriter, r *http.Request) {
			summary, err := a.queries.summary(r.URL.Query().Get("disease"))
			a.respond(w, r, summary, err)
		})
		r.Get("/histogram", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			hist, err := a.queries.histogram(q.Get("disease"), q.Get("bin_width"))
			a.respond(w, r, hist, err)
		})
		r.Get("/heatmap", func(w http.ResponseWriter, r *http.Request) {
			heatmap, err := a.queries.heatmap(r.URL.Query().Get("disease"))
			a.respond(w, r, heatmap, err)
		})
		r.Get("/table", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			grid, err := a.queries.table(q.Get("disease"), q)
			a.respond(w, r, grid, err)
		})
	})
}

// ServeHTTP lets the app be mounted or tested as a plain handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	a.logger.Info("[API] Starting STR browser API on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) respond(w http.ResponseWriter, r *http.Request, v interface{}, err error) {
	if err != nil {
		a.logger.Debug("[API] %s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, statusFor(err), errorBody(err))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		internal.DefaultLogger.Error("[API] Failed to encode response: %v", err)
	}
}
