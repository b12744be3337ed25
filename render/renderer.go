package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	htmlmd "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/rpupo63/zenith-portfolio/chrome"
	"github.com/rpupo63/zenith-portfolio/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names a top-level template under templates/pages.
type Page string

const (
	PageHome     Page = "home"
	PageProjects Page = "projects"
	PageProject  Page = "project"
	PageContact  Page = "contact"
	PageNotFound Page = "not_found"
)

var allPages = []Page{PageHome, PageProjects, PageProject, PageContact, PageNotFound}

// Layout is the value every template executes against.
type Layout struct {
	Chrome      chrome.Chrome
	Title       string
	Description string
	View        any
}

type Renderer struct {
	pages    map[Page]*template.Template
	site     config.Site
	assets   AssetURLer
	md       goldmark.Markdown
	htmlToMD *htmlmd.Converter
	now      func() time.Time
	logger   zerolog.Logger
}

// New parses the embedded templates: base and partials first, then each page on its own clone.
func New(site config.Site, assets AssetURLer) (*Renderer, error) {
	base, err := template.New("base.html").Funcs(funcMap()).ParseFS(templateFS, "templates/base.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("render.New: parse base and partials: %w", err)
	}

	pages := make(map[Page]*template.Template, len(allPages))
	for _, page := range allPages {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("render.New: clone base for %s: %w", page, err)
		}
		if _, err := clone.ParseFS(templateFS, "templates/pages/"+string(page)+".html"); err != nil {
			return nil, fmt.Errorf("render.New: parse page %s: %w", page, err)
		}
		pages[page] = clone
	}

	return &Renderer{
		pages:  pages,
		site:   site,
		assets: assets,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		htmlToMD: htmlmd.NewConverter("", true, nil),
		now:      time.Now,
		logger:   log.With().Str("component", "renderer").Logger(),
	}, nil
}

// Static returns the embedded stylesheet and scripts, rooted so "app.css" is at the top.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the embed directive guarantees the directory
		panic(err)
	}
	return sub
}

func (r *Renderer) Site() config.Site {
	return r.site
}

func (r *Renderer) Home(w io.Writer, view HomeView) error {
	return r.render(w, PageHome, "/", r.site.Title, view)
}

func (r *Renderer) Projects(w io.Writer, view ProjectsView) error {
	return r.render(w, PageProjects, "/projects", "Projects | "+r.site.Brand, view)
}

func (r *Renderer) Project(w io.Writer, path string, view ProjectView) error {
	return r.render(w, PageProject, path, view.Title+" | "+r.site.Brand, view)
}

func (r *Renderer) Contact(w io.Writer, view ContactView) error {
	return r.render(w, PageContact, "/contact", "Contact | "+r.site.Brand, view)
}

func (r *Renderer) NotFound(w io.Writer, path string) error {
	return r.render(w, PageNotFound, path, "Page Not Found | "+r.site.Brand, NotFoundView{Path: path})
}

// render executes into a buffer so a template error never leaves a half-written page.
func (r *Renderer) render(w io.Writer, page Page, path, title string, view any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("render: unknown page %q", page)
	}

	layout := Layout{
		Chrome:      chrome.New(r.site, path, r.now()),
		Title:       title,
		Description: r.site.Description,
		View:        view,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", layout); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) markdown(source string) template.HTML {
	if source == "" {
		return ""
	}

	// descriptions pasted from a rich-text editor arrive as HTML
	if strings.HasPrefix(strings.TrimSpace(source), "<") {
		converted, err := r.htmlToMD.ConvertString(source)
		if err != nil {
			r.logger.Warn().Err(err).Msg("html description conversion failed, rendering as markdown")
		} else {
			source = converted
		}
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		r.logger.Warn().Err(err).Msg("markdown conversion failed, using escaped text")
		return template.HTML("<p>" + template.HTMLEscapeString(source) + "</p>")
	}
	// goldmark escapes raw HTML unless WithUnsafe is set
	return template.HTML(buf.String())
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		// reveal returns reveal-on-scroll attributes with the given delay (s) and y offset (px).
		"reveal": func(delay float64, yOffset int) template.HTMLAttr {
			cfg := chrome.DefaultReveal().WithDelay(delay)
			cfg.YOffset = yOffset
			return cfg.Attrs()
		},
		"section": func(delay float64) template.HTMLAttr {
			return chrome.SectionReveal().WithDelay(delay).Attrs()
		},
		// stagger is base + step*i, rounded to hundredths.
		"stagger": func(base, step float64, i int) float64 {
			return float64(int((base+step*float64(i))*100+0.5)) / 100
		},
		"easing": func() string { return chrome.Easing },
	}
}
