package api

import (
	"time"

	"github.com/rpupo63/zenith-portfolio/cache"
	"github.com/rpupo63/zenith-portfolio/config"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, c map[string]string, startupTime time.Time) *routeHandlers {
	var revalidator cache.Revalidator = noopRevalidator{}
	if deps.Pages != nil {
		revalidator = deps.Pages
	}

	return &routeHandlers{
		pageHandler:       newPageHandler(deps.Store, deps.Renderer, deps.Pages, deps.Metrics),
		contactHandler:    newContactHandler(deps.Mailer, deps.Emailer, deps.Metrics),
		revalidateHandler: newRevalidateHandler(config.GetString(c, "SANITY_REVALIDATE_SECRET", ""), revalidator, deps.Metrics),
		seoHandler:        newSEOHandler(deps.Renderer.Site().BaseURL),
		healthHandler:     newHealthHandler(startupTime),
	}
}
