package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/shujie1st/tinyapp/internal/models"
	"github.com/shujie1st/tinyapp/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestAuthRequired(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	t.Run("Anonymous is redirected", func(t *testing.T) {
		for _, path := range []string{"/urls", "/urls/new"} {
			w := get(r, path, nil)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/login", w.Header().Get("Location"))
		}
	})

	t.Run("Stale session is treated as anonymous", func(t *testing.T) {
		cookies := registerUser(t, r, "alice@example.com", "pw1")

		// The account disappears while the session cookie lives on.
		db.Where("email = ?", "alice@example.com").Delete(&models.User{})

		w := get(r, "/urls", cookies)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h, _ := setupTestHandler()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	limiter := services.NewIPRateLimiter(rate.Limit(1), 1, logger)
	r := h.SetupRouter(limiter, "../../web/templates/*.html", "../../web/static")

	first := get(r, "/health", nil)
	assert.Equal(t, http.StatusOK, first.Code)

	second := get(r, "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "Rate limit exceeded")
}
