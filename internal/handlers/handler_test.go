package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/shujie1st/tinyapp/internal/config"
	"github.com/shujie1st/tinyapp/internal/models"
	"github.com/shujie1st/tinyapp/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestHandler() (*Handler, *gorm.DB) {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	db.AutoMigrate(&models.User{}, &models.URL{}, &models.Visit{}, &models.AuditLog{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		SessionSecret:       "test-secret-12345678901234567890123456789012",
		SessionMaxAge:       3600,
		VisitorCookieMaxAge: 31536000,
		ShortCodeLength:     6,
		UserIDLength:        8,
	}

	audit := services.NewAuditService(db, logger)
	geoIP := services.NewGeoIPService(cfg, logger)
	stats := services.NewStatsService(db, logger, geoIP)
	users := services.NewUserService(db, audit, cfg.UserIDLength)
	shortener := services.NewShortenerService(db, nil, audit, cfg.ShortCodeLength)
	qr := services.NewQRService()

	h := NewHandler(cfg, logger, users, shortener, stats, audit, qr)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil, "../../web/templates/*.html", "../../web/static")
}

// postForm submits an urlencoded form, carrying any session cookies along.
func postForm(r *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser registers a fresh account and returns the session cookies of
// the now logged-in user.
func registerUser(t *testing.T, r *gin.Engine, email, password string) []*http.Cookie {
	t.Helper()

	w := postForm(r, "/register", url.Values{
		"email":    {email},
		"password": {password},
	}, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/urls", w.Header().Get("Location"))

	return w.Result().Cookies()
}

// createShortURL submits the creation form and returns the new short code
// from the redirect target.
func createShortURL(t *testing.T, r *gin.Engine, cookies []*http.Cookie, longURL string) string {
	t.Helper()

	w := postForm(r, "/urls", url.Values{"long_url": {longURL}}, cookies)

	assert.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/urls/"))

	return strings.TrimPrefix(location, "/urls/")
}
