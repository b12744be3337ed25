package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/zenith-portfolio/cache"
	"github.com/rpupo63/zenith-portfolio/config"
	"github.com/rpupo63/zenith-portfolio/content"
	"github.com/rpupo63/zenith-portfolio/metrics"
	"github.com/rpupo63/zenith-portfolio/render"
	"github.com/rpupo63/zenith-portfolio/services"
	"github.com/rs/zerolog/log"
)

// Dependencies are the collaborators the HTTP layer needs. Pages and Metrics may be nil.
type Dependencies struct {
	Store    content.Store
	Renderer *render.Renderer
	Pages    *cache.PageCache
	Mailer   services.EmailSender
	Emailer  *services.ContactEmailer
	Metrics  *metrics.Metrics
}

func (d Dependencies) validate() error {
	switch {
	case d.Renderer == nil:
		return errors.New("api: renderer is required")
	case d.Mailer == nil:
		return errors.New("api: mailer is required")
	case d.Emailer == nil:
		return errors.New("api: contact emailer is required")
	}
	return nil
}

type Server struct {
	*http.Server
	startupTime time.Time
	pages       pageHandler
}

func NewServer(c map[string]string, deps Dependencies) (Server, error) {
	if err := deps.validate(); err != nil {
		return Server{}, err
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router, handlers := newRouter(deps, withConfig(c), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 30),
		WriteTimeout: config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 30),
		IdleTimeout:  config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 120),
	}

	return Server{Server: server, startupTime: startupTime, pages: handlers.pageHandler}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) (*chi.Mux, *routeHandlers) {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	if config.GetString(router.config, "LOG_FORMAT", "console") == "json" {
		chiRouter.Use(JSONHTTPLoggingMiddleware)
	} else {
		chiRouter.Use(ColoredHTTPLoggingMiddleware)
	}
	chiRouter.Use(metricsMiddleware(deps.Metrics))
	chiRouter.Use(middleware.Compress(5, "text/html", "text/css", "text/javascript", "application/javascript", "application/json", "application/xml", "text/plain"))

	handlers := initializeHandlers(deps, router.config, router.startupTime)

	acceptedOrigins := config.GetStrings(router.config, "ACCEPTED_ORIGINS")

	setupPageRoutes(chiRouter, handlers)
	setupAPIRoutes(chiRouter, handlers, acceptedOrigins)
	setupMetricsRoute(chiRouter, deps.Metrics)

	return chiRouter, handlers
}

// Prerender renders every known page into the page cache.
func (s Server) Prerender(ctx context.Context) (int, error) {
	return s.pages.prerender(ctx)
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		errChannel <- err
	}
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}

// noopRevalidator accepts revalidation when page caching is disabled.
type noopRevalidator struct{}

func (noopRevalidator) RevalidatePath(context.Context, string) error { return nil }
func (noopRevalidator) RevalidateTag(context.Context, string) error  { return nil }
