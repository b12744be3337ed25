package api

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapEntry struct {
	path       string
	changeFreq string
	priority   float64
}

var sitemapEntries = []sitemapEntry{
	{path: "/", changeFreq: "monthly", priority: 1.0},
	{path: "/projects", changeFreq: "monthly", priority: 0.8},
}

type seoHandler struct {
	logger  zerolog.Logger
	baseURL string
	now     func() time.Time
}

func newSEOHandler(baseURL string) seoHandler {
	return seoHandler{
		logger:  log.With().Str("handlerName", "seoHandler").Logger(),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
	}
}

func (h seoHandler) robots() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", h.baseURL)
	}
}

// buildSitemap lists the static public pages with lastmod set to now.
func buildSitemap(baseURL string, now time.Time) urlSet {
	baseURL = strings.TrimSuffix(baseURL, "/")
	set := urlSet{Xmlns: sitemapNamespace}
	for _, entry := range sitemapEntries {
		loc := baseURL
		if entry.path != "/" {
			loc += entry.path
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        loc,
			LastMod:    now.UTC().Format(time.RFC3339),
			ChangeFreq: entry.changeFreq,
			Priority:   fmt.Sprintf("%.1f", entry.priority),
		})
	}
	return set
}

func (h seoHandler) sitemap() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		body, err := xml.MarshalIndent(buildSitemap(h.baseURL, h.now()), "", "  ")
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to encode sitemap")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write([]byte(xml.Header))
		_, _ = w.Write(body)
	}
}
