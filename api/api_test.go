package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rpupo63/zenith-portfolio/cache"
	"github.com/rpupo63/zenith-portfolio/config"
	"github.com/rpupo63/zenith-portfolio/content"
	"github.com/rpupo63/zenith-portfolio/metrics"
	"github.com/rpupo63/zenith-portfolio/render"
	"github.com/rpupo63/zenith-portfolio/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastProject = `{"_id":"p1","_type":"project","title":"Forecast Engine","slug":{"current":"forecast"},` +
	`"summary":"Demand forecasting","description":"Built with **care**","tech":[],"featured":true,` +
	`"publishedAt":"2025-01-01T00:00:00Z"}`

// fakeStore answers content queries by matching the GROQ text.
type fakeStore struct {
	mu      sync.Mutex
	results map[string]string
	bySlug  map[string]string
	fail    bool
	calls   int

	// when set, answers to holdQuery are read and then held until release is closed
	holdQuery string
	held      chan struct{}
	release   chan struct{}
}

func (s *fakeStore) serve(w http.ResponseWriter, r *http.Request) {
	groq := r.URL.Query().Get("query")

	s.mu.Lock()
	s.calls++
	if s.fail {
		s.mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"description":"store down"}}`))
		return
	}

	result := "null"
	if groq == content.ProjectBySlugQuery.GROQ {
		var slug string
		_ = json.Unmarshal([]byte(r.URL.Query().Get("$slug")), &slug)
		if body, ok := s.bySlug[slug]; ok {
			result = body
		}
	} else if body, ok := s.results[groq]; ok {
		result = body
	}

	var held, release chan struct{}
	if s.holdQuery != "" && groq == s.holdQuery {
		held, release = s.held, s.release
		s.holdQuery = ""
	}
	s.mu.Unlock()

	if release != nil {
		close(held)
		<-release
	}
	_, _ = w.Write([]byte(`{"result":` + result + `}`))
}

// hold makes the next answer to groq wait until the returned release channel is closed.
// held is closed once that answer has been read from the store.
func (s *fakeStore) hold(groq string) (held, release chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdQuery = groq
	s.held = make(chan struct{})
	s.release = make(chan struct{})
	return s.held, s.release
}

func (s *fakeStore) set(groq, result string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[groq] = result
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubSender struct {
	mu    sync.Mutex
	sent  []services.Email
	err   error
	panic bool
}

func (s *stubSender) SendEmail(_ context.Context, email services.Email) (string, error) {
	if s.panic {
		panic("mailer exploded")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, email)
	return "msg_1", nil
}

type testEnv struct {
	router   http.Handler
	handlers *routeHandlers
	store    *fakeStore
	sender   *stubSender
	pages    *cache.PageCache
}

func newTestEnv(t *testing.T, c map[string]string) *testEnv {
	t.Helper()

	store := &fakeStore{
		results: map[string]string{
			content.FeaturedProjectsQuery.GROQ: "[" + forecastProject + "]",
			content.AllProjectsQuery.GROQ:      "[" + forecastProject + "]",
			content.ProjectSlugsQuery.GROQ:     `[{"slug":{"current":"forecast"}}]`,
			content.BioQuery.GROQ:              `{"_id":"b1","_type":"bio","name":"Ada Lovelace","tagline":"Analyst"}`,
		},
		bySlug: map[string]string{"forecast": forecastProject},
	}
	srv := httptest.NewServer(http.HandlerFunc(store.serve))
	t.Cleanup(srv.Close)

	client := content.NewClient(content.Options{ProjectID: "test", Host: srv.URL})
	renderer, err := render.New(config.DefaultSite(), client)
	require.NoError(t, err)

	sender := &stubSender{}
	pages := cache.New(32, time.Minute)
	deps := Dependencies{
		Store:    content.New(client),
		Renderer: renderer,
		Pages:    pages,
		Mailer:   sender,
		Emailer:  services.NewContactEmailer("site@zenith.dev", "me@zenith.dev"),
		Metrics:  metrics.New(),
	}
	router, handlers := newRouter(deps, withConfig(c), withStartupTime(time.Now()))

	return &testEnv{router: router, handlers: handlers, store: store, sender: sender, pages: pages}
}

func (e *testEnv) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, path, "", nil)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func TestHomePage_RendersAndCaches(t *testing.T) {
	env := newTestEnv(t, nil)

	first := env.get("/")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "text/html; charset=utf-8", first.Header().Get("Content-Type"))
	assert.Contains(t, first.Header().Get("Cache-Control"), "s-maxage=300")

	doc := document(t, first)
	assert.Equal(t, "Ada Lovelace", strings.TrimSpace(doc.Find("h1.hero__name").Text()))
	assert.Contains(t, doc.Find("#featured").Text(), "Forecast Engine")

	calls := env.store.callCount()
	second := env.get("/")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, calls, env.store.callCount())
}

func TestPages_StoreDown(t *testing.T) {
	env := newTestEnv(t, nil)
	env.store.fail = true

	home := env.get("/")
	require.Equal(t, http.StatusOK, home.Code)
	doc := document(t, home)
	assert.Equal(t, "Zenith Portfolio", strings.TrimSpace(doc.Find("h1.hero__name").Text()))
	assert.Equal(t, 0, doc.Find("#featured").Length())

	listing := env.get("/projects")
	require.Equal(t, http.StatusOK, listing.Code)
	assert.Equal(t, 1, document(t, listing).Find(".empty-state").Length())

	detail := env.get("/projects/forecast")
	assert.Equal(t, http.StatusNotFound, detail.Code)
	assert.Contains(t, detail.Body.String(), "Page Not Found")
}

func TestProjectDetail(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get("/projects/forecast")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := document(t, rec)
	assert.Equal(t, "Forecast Engine", strings.TrimSpace(doc.Find("h1.page-header__title").Text()))
	assert.Equal(t, "care", doc.Find(".prose strong").First().Text())

	missing := env.get("/projects/nope")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "no-store", missing.Header().Get("Cache-Control"))
	_, cached := env.pages.Get("/projects/nope")
	assert.False(t, cached)
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get("/does/not/exist")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	doc := document(t, rec)
	assert.Equal(t, "404", strings.TrimSpace(doc.Find("h1.not-found__code").Text()))
	assert.Equal(t, "Page Not Found | Zenith", doc.Find("title").Text())
}

func TestContact(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		senderErr  error
		wantStatus int
		wantError  string
		wantSent   int
	}{
		{"missing name", `{"email":"ada@example.com","message":"hi"}`, nil, 400, "All fields are required", 0},
		{"empty message", `{"name":"Ada","email":"ada@example.com","message":""}`, nil, 400, "All fields are required", 0},
		{"bad email", `{"name":"Ada","email":"ada@example","message":"hi"}`, nil, 400, "Invalid email address", 0},
		{"malformed json", `{"name":`, nil, 500, "Internal server error", 0},
		{"provider failure", `{"name":"Ada","email":"ada@example.com","message":"hi"}`, assert.AnError, 500, "Failed to send email", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.sender.err = tt.senderErr

			rec := env.do(http.MethodPost, "/api/contact", tt.body, map[string]string{"Content-Type": "application/json"})
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, map[string]any{"error": tt.wantError}, decodeBody(t, rec))
			assert.Len(t, env.sender.sent, tt.wantSent)
		})
	}
}

func TestContact_Success(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodPost, "/api/contact", `{"name":"Ada","email":"ada@example.com","message":"line one\nline two"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Message sent successfully! I'll get back to you within 24 hours.", body["message"])

	require.Len(t, env.sender.sent, 1)
	email := env.sender.sent[0]
	assert.Equal(t, "New contact from Ada", email.Subject)
	assert.Equal(t, "ada@example.com", email.ReplyTo)
	assert.Equal(t, []string{"me@zenith.dev"}, email.To)
	assert.Contains(t, email.HTML, "line one<br>line two")
}

func TestContact_PanicBecomesJSON500(t *testing.T) {
	env := newTestEnv(t, nil)
	env.sender.panic = true

	rec := env.do(http.MethodPost, "/api/contact", `{"name":"Ada","email":"ada@example.com","message":"hi"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, rec)["error"])
}

func TestValidateContact(t *testing.T) {
	valid := ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "hi"}
	assert.NoError(t, ValidateContact(valid))

	invalid := []string{
		"ada", "ada@example", "a da@example.com", "@example.com", "ada@@example.com",
		"a\vb@example.com", "a\u00a0b@example.com", "a\u2028b@example.com", "a\u3000b@example.com",
		"a\ufeffb@example.com", "ada@exa\u2029mple.com",
	}
	for _, email := range invalid {
		req := valid
		req.Email = email
		assert.Error(t, ValidateContact(req), email)
	}

	assert.NoError(t, ValidateContact(ContactRequest{Name: "Zoë", Email: "zoë@exämple.com", Message: "hi"}))

	// only presence is checked; whitespace counts as present
	req := valid
	req.Name = " "
	assert.NoError(t, ValidateContact(req))
}

func TestRevalidate_SecretAndInvalidation(t *testing.T) {
	env := newTestEnv(t, map[string]string{"SANITY_REVALIDATE_SECRET": "s3cret"})

	env.get("/")
	env.get("/projects/forecast")
	require.Equal(t, "HIT", env.get("/").Header().Get("X-Cache"))

	denied := env.do(http.MethodPost, "/api/revalidate?secret=wrong", `{"_type":"project"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, denied.Code)
	assert.Equal(t, map[string]any{"message": "Invalid secret"}, decodeBody(t, denied))
	assert.Equal(t, "HIT", env.get("/").Header().Get("X-Cache"))

	ok := env.do(http.MethodPost, "/api/revalidate?secret=s3cret", `{"_type":"bio","_id":"b1"}`, nil)
	require.Equal(t, http.StatusOK, ok.Code)
	body := decodeBody(t, ok)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["revalidated"])
	assert.Equal(t, []any{"/", "/projects"}, body["paths"])
	assert.Equal(t, "bio", body["contentType"])
	assert.NotZero(t, body["now"])

	assert.Equal(t, "MISS", env.get("/").Header().Get("X-Cache"))
	// bio pages do not include project detail
	assert.Equal(t, "HIT", env.get("/projects/forecast").Header().Get("X-Cache"))

	env.do(http.MethodPost, "/api/revalidate?secret=s3cret", `{"_type":"project"}`, nil)
	assert.Equal(t, "MISS", env.get("/projects/forecast").Header().Get("X-Cache"))
}

func TestRevalidate_UnconfiguredSecretRejectsAll(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodPost, "/api/revalidate?secret=", `{}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRevalidate_TolerantBody(t *testing.T) {
	env := newTestEnv(t, map[string]string{"SANITY_REVALIDATE_SECRET": "s3cret"})

	rec := env.do(http.MethodPost, "/api/revalidate?secret=s3cret", `not json`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	_, hasType := body["contentType"]
	assert.False(t, hasType)
	assert.Equal(t, []any{"/", "/projects"}, body["paths"])
}

type failingRevalidator struct {
	panic bool
}

func (f failingRevalidator) RevalidatePath(context.Context, string) error {
	if f.panic {
		panic("cache gone")
	}
	return assert.AnError
}

func (failingRevalidator) RevalidateTag(context.Context, string) error { return nil }

func TestRevalidate_Failure(t *testing.T) {
	for _, panics := range []bool{false, true} {
		h := newRevalidateHandler("s3cret", failingRevalidator{panic: panics}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/revalidate?secret=s3cret", strings.NewReader(`{"_type":"project"}`))
		rec := httptest.NewRecorder()
		h.revalidate().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, map[string]any{"success": false, "message": "Error revalidating"}, decodeBody(t, rec))
	}
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"/", "/projects"}, dedupe([]string{"/", "/projects", "/"}))
}

func TestRobotsAndSitemap(t *testing.T) {
	env := newTestEnv(t, nil)

	robots := env.get("/robots.txt")
	require.Equal(t, http.StatusOK, robots.Code)
	assert.Contains(t, robots.Body.String(), "User-agent: *\nAllow: /\nDisallow: /api/\n")
	assert.Contains(t, robots.Body.String(), "Sitemap: https://your-portfolio.vercel.app/sitemap.xml")

	sitemap := env.get("/sitemap.xml")
	require.Equal(t, http.StatusOK, sitemap.Code)
	assert.Contains(t, sitemap.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, sitemap.Body.String(), "<loc>https://your-portfolio.vercel.app/projects</loc>")
	assert.Contains(t, sitemap.Body.String(), "<priority>0.8</priority>")
}

func TestBuildSitemap(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	set := buildSitemap("https://example.dev/", now)

	require.Len(t, set.URLs, 2)
	assert.Equal(t, "https://example.dev", set.URLs[0].Loc)
	assert.Equal(t, "1.0", set.URLs[0].Priority)
	assert.Equal(t, "monthly", set.URLs[1].ChangeFreq)
	assert.Equal(t, "2026-03-04T05:06:07Z", set.URLs[1].LastMod)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t, nil)

	health := env.get("/api/health")
	require.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "ok", decodeBody(t, health)["status"])

	scrape := env.get("/metrics")
	require.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), `portfolio_http_requests_total{method="GET",route="/api/health",status="200"}`)
}

func TestStaticAssets(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get("/static/app.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, map[string]string{"ACCEPTED_ORIGINS": "https://ok.dev"})

	preflight := map[string]string{"Origin": "https://evil.dev", "Access-Control-Request-Method": "POST"}
	blocked := env.do(http.MethodOptions, "/api/contact", "", preflight)
	assert.Equal(t, http.StatusForbidden, blocked.Code)

	preflight["Origin"] = "https://ok.dev"
	allowed := env.do(http.MethodOptions, "/api/contact", "", preflight)
	assert.Equal(t, "https://ok.dev", allowed.Header().Get("Access-Control-Allow-Origin"))
}

func TestPrerender(t *testing.T) {
	env := newTestEnv(t, nil)

	n, err := env.handlers.pageHandler.prerender(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.Equal(t, "HIT", env.get("/contact").Header().Get("X-Cache"))
	assert.Equal(t, "HIT", env.get("/projects/forecast").Header().Get("X-Cache"))
}

func TestRevalidate_InFlightRenderIsNotCached(t *testing.T) {
	env := newTestEnv(t, map[string]string{"SANITY_REVALIDATE_SECRET": "s3cret"})

	oldProject := strings.Replace(forecastProject, "Forecast Engine", "Old Title", 1)
	newProject := strings.Replace(forecastProject, "Forecast Engine", "New Title", 1)
	env.store.set(content.AllProjectsQuery.GROQ, "["+oldProject+"]")

	held, release := env.store.hold(content.AllProjectsQuery.GROQ)
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() { done <- env.get("/projects") }()

	<-held
	env.store.set(content.AllProjectsQuery.GROQ, "["+newProject+"]")
	rec := env.do(http.MethodPost, "/api/revalidate?secret=s3cret", `{"_type":"project"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	close(release)

	inFlight := <-done
	require.Equal(t, http.StatusOK, inFlight.Code)
	assert.Contains(t, inFlight.Body.String(), "Old Title")

	next := env.get("/projects")
	assert.Equal(t, "MISS", next.Header().Get("X-Cache"))
	assert.Contains(t, next.Body.String(), "New Title")
	assert.NotContains(t, next.Body.String(), "Old Title")
}
