package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trivora/trivora/internal/config"
	"github.com/trivora/trivora/internal/database"
	"github.com/trivora/trivora/internal/handlers"
	"github.com/trivora/trivora/internal/media"
	"github.com/trivora/trivora/internal/session"
)

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:          "8080",
		BaseURL:       "http://blog.test",
		SessionSecret: "test-secret",
		SessionDays:   30,
		SQLitePath:    filepath.Join(t.TempDir(), "test.db"),
		TemplatesGlob: "../../web/templates/*.html",
		Media: config.Media{
			Backend:       "host",
			UploadTimeout: time.Second,
		},
		Indexing: config.Indexing{
			VerificationPath: "/verify.txt",
			VerificationBody: "token-123",
			PingTimeout:      time.Second,
		},
	}
	for _, m := range mutate {
		m(cfg)
	}

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionDays)
	uploader, err := media.NewFromConfig(cfg.Media)
	require.NoError(t, err)
	handler := handlers.NewHandler(db.GetDB(), cfg, sessions, uploader, nil)

	return &Server{cfg: cfg, db: db, handler: handler, sessions: sessions}
}

func TestBodyLimit_OversizedRequestRejected(t *testing.T) {
	r := newTestServer(t).RegisterRoutes()

	body := "email=" + strings.Repeat("a", MaxUploadBytes+100)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBodyLimit_NormalRequestPasses(t *testing.T) {
	r := newTestServer(t).RegisterRoutes()

	body := "email=nobody@example.com&password=hunter2"
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// No such account, but the body made it through the limiter.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerificationRoute_ServesConfiguredToken(t *testing.T) {
	r := newTestServer(t).RegisterRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verify.txt", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token-123", w.Body.String())
}

func TestVerificationRoute_AbsentWithoutToken(t *testing.T) {
	r := newTestServer(t, func(cfg *config.Config) {
		cfg.Indexing.VerificationBody = ""
	}).RegisterRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verify.txt", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostRoutes_DispatchNextToDetail(t *testing.T) {
	r := newTestServer(t).RegisterRoutes()

	// Anonymous delete lands on the dispatch route, not the detail page.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/post/delete/1", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized!", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/post/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSitemapRoute_ServesXML(t *testing.T) {
	r := newTestServer(t).RegisterRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, w.Body.String(), "http://www.sitemaps.org/schemas/sitemap/0.9")
	assert.Contains(t, w.Body.String(), "http://blog.test/contact")
}

func TestHome_DatabaseErrorIsPlainText(t *testing.T) {
	s := newTestServer(t)
	r := s.RegisterRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, s.db.Close())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("Database Error:")))
}
