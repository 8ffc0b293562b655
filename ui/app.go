package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"abplayground/domain/experiment"
	"abplayground/ports"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// App is the experiment playground web application
type App struct {
	router    *chi.Mux
	port      string
	evaluator ports.ExperimentEvaluator
	defaults  experiment.Input
	templates *template.Template
	lessons   []Lesson
}

// Config holds UI application configuration. An empty Port listens on 8090.
type Config struct {
	Port     string
	Defaults experiment.Input
}

// NewApp creates the playground application
func NewApp(config Config, evaluator ports.ExperimentEvaluator) (*App, error) {
	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if config.Port == "" {
		config.Port = "8090"
	}

	app := &App{
		router:    chi.NewRouter(),
		port:      config.Port,
		evaluator: evaluator,
		defaults:  config.Defaults.WithDefaults(),
		templates: templates,
		lessons:   renderLessons(),
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/run", a.handleRun)
	a.router.Get("/learn", a.handleLearn)
}

// ServeHTTP implements http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start starts the HTTP server on the configured port
func (a *App) Start() error {
	addr := ":" + a.port
	log.Printf("Starting A/B playground UI server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	var buf strings.Builder
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}
