package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/shujie1st/tinyapp/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	t.Run("Register success logs the user in", func(t *testing.T) {
		cookies := registerUser(t, r, "alice@example.com", "pw1")

		var user models.User
		assert.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
		assert.Len(t, user.ID, 8)

		// The session cookie works
		w := get(r, "/urls", cookies)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Empty password", func(t *testing.T) {
		w := postForm(r, "/register", url.Values{
			"email":    {"bob@example.com"},
			"password": {""},
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		w := postForm(r, "/register", url.Values{
			"email":    {"alice@example.com"},
			"password": {"other"},
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var count int64
		db.Model(&models.User{}).Where("email = ?", "alice@example.com").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Register form redirects when already logged in", func(t *testing.T) {
		cookies := registerUser(t, r, "carol@example.com", "pw")

		w := get(r, "/register", cookies)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/urls", w.Header().Get("Location"))
	})
}

func TestLogin(t *testing.T) {
	h, _ := setupTestHandler()
	r := setupTestRouter(h)

	registerUser(t, r, "alice@example.com", "pw1")

	t.Run("Login success", func(t *testing.T) {
		w := postForm(r, "/login", url.Values{
			"email":    {"alice@example.com"},
			"password": {"pw1"},
		}, nil)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/urls", w.Header().Get("Location"))

		cookies := w.Result().Cookies()
		list := get(r, "/urls", cookies)
		assert.Equal(t, http.StatusOK, list.Code)
	})

	t.Run("Wrong password", func(t *testing.T) {
		w := postForm(r, "/login", url.Values{
			"email":    {"alice@example.com"},
			"password": {"wrong"},
		}, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unknown email renders the same denial", func(t *testing.T) {
		w := postForm(r, "/login", url.Values{
			"email":    {"nobody@example.com"},
			"password": {"pw1"},
		}, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Login form redirects when already logged in", func(t *testing.T) {
		cookies := registerUser(t, r, "dave@example.com", "pw")

		w := get(r, "/login", cookies)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/urls", w.Header().Get("Location"))
	})
}

func TestLogout(t *testing.T) {
	h, _ := setupTestHandler()
	r := setupTestRouter(h)

	cookies := registerUser(t, r, "alice@example.com", "pw1")

	w := postForm(r, "/logout", nil, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// The expired cookie keeps the attributes it was issued with
	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "tinyapp_session" {
			sessionCookie = c
		}
	}
	assert.NotNil(t, sessionCookie)
	assert.Less(t, sessionCookie.MaxAge, 0)
	assert.True(t, sessionCookie.HttpOnly)
	assert.Equal(t, "/", sessionCookie.Path)

	// The invalidated session no longer opens protected pages
	loggedOut := w.Result().Cookies()
	list := get(r, "/urls", loggedOut)
	assert.Equal(t, http.StatusFound, list.Code)
	assert.Equal(t, "/login", list.Header().Get("Location"))
}

func TestIndexRedirect(t *testing.T) {
	h, _ := setupTestHandler()
	r := setupTestRouter(h)

	t.Run("Anonymous goes to login", func(t *testing.T) {
		w := get(r, "/", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("Logged in goes to urls", func(t *testing.T) {
		cookies := registerUser(t, r, "alice@example.com", "pw1")

		w := get(r, "/", cookies)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/urls", w.Header().Get("Location"))
	})
}
