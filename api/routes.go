package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/zenith-portfolio/metrics"
	"github.com/rpupo63/zenith-portfolio/render"
)

// Page routes served by pageHandler; also listed by the routes command.
var PageRoutes = []string{"/", "/projects", "/projects/{slug}", "/contact"}

func setupPageRoutes(r chi.Router, handlers *routeHandlers) {
	page := handlers.pageHandler.page()
	for _, route := range PageRoutes {
		r.Get(route, page)
	}

	r.NotFound(handlers.pageHandler.notFound())

	r.Get("/robots.txt", handlers.seoHandler.robots())
	r.Get("/sitemap.xml", handlers.seoHandler.sitemap())

	static := http.StripPrefix("/static/", http.FileServer(http.FS(render.Static())))
	r.Handle("/static/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		static.ServeHTTP(w, req)
	}))
}

func setupAPIRoutes(r chi.Router, handlers *routeHandlers, acceptedOrigins []string) {
	r.Route("/api", func(r chi.Router) {
		r.Use(CORSCheckMiddleware(acceptedOrigins))
		r.Use(corsMiddleware(acceptedOrigins))

		r.Get("/health", handlers.healthHandler.health())
		r.Post("/contact", handlers.contactHandler.submit())
		r.Post("/revalidate", handlers.revalidateHandler.revalidate())
	})
}

func setupMetricsRoute(r chi.Router, m *metrics.Metrics) {
	if m == nil {
		return
	}
	r.Handle("/metrics", m.Handler())
}
