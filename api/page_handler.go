package api

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/zenith-portfolio/cache"
	"github.com/rpupo63/zenith-portfolio/content"
	"github.com/rpupo63/zenith-portfolio/metrics"
	"github.com/rpupo63/zenith-portfolio/models"
	"github.com/rpupo63/zenith-portfolio/render"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	htmlContentType   = "text/html; charset=utf-8"
	cachedPageControl = "public, max-age=0, s-maxage=300, stale-while-revalidate=60"
	uncachedControl   = "no-store"
	prerenderWorkers  = 4
)

// pageBuilder renders one page into buf and reports the status to send.
type pageBuilder func(ctx context.Context, buf *bytes.Buffer) (int, error)

type pageHandler struct {
	logger   zerolog.Logger
	store    content.Store
	renderer *render.Renderer
	pages    *cache.PageCache
	metrics  *metrics.Metrics
}

func newPageHandler(store content.Store, renderer *render.Renderer, pages *cache.PageCache, m *metrics.Metrics) pageHandler {
	logger := log.With().Str("handlerName", "pageHandler").Logger()
	return pageHandler{
		logger:   logger,
		store:    store,
		renderer: renderer,
		pages:    pages,
		metrics:  m,
	}
}

// page serves any of the site's HTML routes, resolving the builder from the request path.
func (h pageHandler) page() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if h.pages != nil {
			if cached, ok := h.pages.Get(path); ok {
				h.metrics.CacheLookup(true)
				writePage(w, cached.Status, cached.Body, cachedPageControl, "HIT")
				return
			}
			h.metrics.CacheLookup(false)
		}

		build, ok := h.builderFor(path)
		if !ok {
			h.notFound().ServeHTTP(w, r)
			return
		}

		status, body, ok := h.renderPage(r.Context(), path, build)
		if !ok {
			h.writeFailure(w, path)
			return
		}

		control := uncachedControl
		if status == http.StatusOK {
			control = cachedPageControl
		}
		writePage(w, status, body, control, "MISS")
	}
}

func (h pageHandler) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := h.renderer.NotFound(&buf, r.URL.Path); err != nil {
			h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("failed to render not found page")
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		writePage(w, http.StatusNotFound, buf.Bytes(), uncachedControl, "")
	}
}

// renderPage runs build under a tag collector and caches successful renders with their tags.
// A render overtaken by a revalidation of its path or tags is served but not cached.
func (h pageHandler) renderPage(ctx context.Context, path string, build pageBuilder) (int, []byte, bool) {
	ctx = content.WithTagCollector(ctx)

	var since uint64
	if h.pages != nil {
		since = h.pages.Generation()
	}

	var buf bytes.Buffer
	status, err := build(ctx, &buf)
	if err != nil {
		h.logger.Error().Err(err).Str("path", path).Msg("failed to render page")
		return 0, nil, false
	}

	body := buf.Bytes()
	if status == http.StatusOK && h.pages != nil {
		fresh := h.pages.SetIfFresh(path, cache.Page{
			Status:      status,
			ContentType: htmlContentType,
			Body:        body,
			Tags:        content.CollectedTags(ctx),
			RenderedAt:  time.Now(),
		}, since)
		if !fresh {
			h.logger.Debug().Str("path", path).Msg("render overtaken by revalidation, not cached")
		}
	}
	return status, body, true
}

// writeFailure falls back to the not found view when a page could not be rendered.
func (h pageHandler) writeFailure(w http.ResponseWriter, path string) {
	var buf bytes.Buffer
	if err := h.renderer.NotFound(&buf, path); err != nil {
		h.logger.Error().Err(err).Str("path", path).Msg("failed to render fallback page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writePage(w, http.StatusNotFound, buf.Bytes(), uncachedControl, "")
}

func writePage(w http.ResponseWriter, status int, body []byte, cacheControl, cacheState string) {
	w.Header().Set("Content-Type", htmlContentType)
	w.Header().Set("Cache-Control", cacheControl)
	if cacheState != "" {
		w.Header().Set("X-Cache", cacheState)
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h pageHandler) builderFor(path string) (pageBuilder, bool) {
	switch path {
	case "/":
		return h.buildHome, true
	case "/projects":
		return h.buildProjects, true
	case "/contact":
		return h.buildContact, true
	}

	slug, ok := strings.CutPrefix(path, "/projects/")
	if !ok || slug == "" || strings.Contains(slug, "/") {
		return nil, false
	}
	return func(ctx context.Context, buf *bytes.Buffer) (int, error) {
		return h.buildProject(ctx, buf, path, slug)
	}, true
}

// buildHome fetches the four home sections concurrently. A failed section is logged and
// rendered as absent; it never fails the page.
func (h pageHandler) buildHome(ctx context.Context, buf *bytes.Buffer) (int, error) {
	var (
		data render.HomeData
		g    errgroup.Group
	)

	g.Go(func() error {
		bio, err := h.store.BioRepo().Find(ctx)
		if err != nil {
			h.logger.Warn().Err(err).Msg("bio unavailable, using site hero")
			return nil
		}
		data.Bio = bio
		return nil
	})
	g.Go(func() error {
		featured, err := h.store.ProjectRepo().FindFeatured(ctx)
		if err != nil {
			h.logger.Warn().Err(err).Msg("featured projects unavailable")
			return nil
		}
		data.Featured = featured
		return nil
	})
	g.Go(func() error {
		recs, err := h.store.RecommendationRepo().FindAll(ctx)
		if err != nil {
			h.logger.Warn().Err(err).Msg("recommendations unavailable")
			return nil
		}
		data.Recommendations = recs
		return nil
	})
	g.Go(func() error {
		skills, err := h.store.SkillRepo().FindAll(ctx)
		if err != nil {
			h.logger.Warn().Err(err).Msg("skills unavailable")
			return nil
		}
		data.Skills = skills
		return nil
	})
	_ = g.Wait()

	if err := h.renderer.Home(buf, h.renderer.BuildHome(data)); err != nil {
		return 0, err
	}
	return http.StatusOK, nil
}

func (h pageHandler) buildProjects(ctx context.Context, buf *bytes.Buffer) (int, error) {
	projects, err := h.store.ProjectRepo().FindAll(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("project listing unavailable, rendering empty state")
		projects = nil
	}

	if err := h.renderer.Projects(buf, h.renderer.BuildProjects(projects)); err != nil {
		return 0, err
	}
	return http.StatusOK, nil
}

func (h pageHandler) buildProject(ctx context.Context, buf *bytes.Buffer, path, slug string) (int, error) {
	project, err := h.store.ProjectRepo().FindBySlug(ctx, slug)
	if err != nil {
		h.logger.Warn().Err(err).Str("slug", slug).Msg("project lookup failed")
	}
	if err != nil || project == nil {
		if err := h.renderer.NotFound(buf, path); err != nil {
			return 0, err
		}
		return http.StatusNotFound, nil
	}

	if err := h.renderer.Project(buf, path, h.renderer.BuildProject(*project)); err != nil {
		return 0, err
	}
	return http.StatusOK, nil
}

func (h pageHandler) buildContact(_ context.Context, buf *bytes.Buffer) (int, error) {
	if err := h.renderer.Contact(buf, h.renderer.BuildContact()); err != nil {
		return 0, err
	}
	return http.StatusOK, nil
}

// PrerenderPaths lists every page path known at startup: the static pages plus one per slug.
func PrerenderPaths(ctx context.Context, projects *content.ProjectRepo) ([]string, error) {
	paths := []string{"/", "/projects", "/contact"}
	slugs, err := projects.FindSlugs(ctx)
	if err != nil {
		return paths, err
	}
	for _, slug := range slugs {
		paths = append(paths, models.Project{Slug: models.Slug{Current: slug}}.Path())
	}
	return paths, nil
}

// prerender renders and caches every known path. It returns how many pages were cached.
func (h pageHandler) prerender(ctx context.Context) (int, error) {
	if h.pages == nil {
		return 0, nil
	}

	paths, err := PrerenderPaths(ctx, h.store.ProjectRepo())
	if err != nil {
		h.logger.Warn().Err(err).Msg("project slugs unavailable, prerendering static pages only")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prerenderWorkers)
	for _, path := range paths {
		build, ok := h.builderFor(path)
		if !ok {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			status, _, ok := h.renderPage(gctx, path, build)
			if ok && status != http.StatusOK {
				h.logger.Warn().Str("path", path).Int("status", status).Msg("prerender produced non-200 page")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return h.pages.Len(), err
	}
	return h.pages.Len(), nil
}
