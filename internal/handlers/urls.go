package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shujie1st/tinyapp/internal/models"
	"github.com/shujie1st/tinyapp/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListURLs(c *gin.Context) {
	user := h.currentUser(c)

	urls, err := h.shortener.ListForOwner(user.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": "Failed to load your short links"})
		return
	}

	c.HTML(http.StatusOK, "urls_index.html", gin.H{
		"User":    user,
		"URLs":    urls,
		"BaseURL": c.Request.Host,
	})
}

func (h *Handler) ShowNewURLForm(c *gin.Context) {
	c.HTML(http.StatusOK, "urls_new.html", gin.H{
		"User": h.currentUser(c),
	})
}

func (h *Handler) CreateURL(c *gin.Context) {
	user := h.currentUser(c)

	longURL := c.PostForm("long_url")
	if longURL == "" {
		c.HTML(http.StatusBadRequest, "urls_new.html", gin.H{
			"User":  user,
			"Error": "Long URL must not be empty",
		})
		return
	}

	urlEntry, err := h.shortener.Create(longURL, user.ID, c.ClientIP())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "urls_new.html", gin.H{
			"User":  user,
			"Error": "Failed to shorten: " + err.Error(),
		})
		return
	}

	c.Redirect(http.StatusFound, "/urls/"+urlEntry.ShortCode)
}

func (h *Handler) ShowURL(c *gin.Context) {
	urlEntry, user := h.loadOwnedURL(c)
	if urlEntry == nil {
		return
	}

	visits, err := h.stats.VisitsFor(urlEntry.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": "Failed to load visit stats"})
		return
	}

	c.HTML(http.StatusOK, "urls_show.html", gin.H{
		"User":           user,
		"URL":            urlEntry,
		"Visits":         visits,
		"TotalVisits":    len(visits),
		"UniqueVisitors": services.UniqueVisitorCount(visits),
		"BaseURL":        c.Request.Host,
	})
}

func (h *Handler) UpdateURL(c *gin.Context) {
	urlEntry, user := h.loadOwnedURL(c)
	if urlEntry == nil {
		return
	}

	newLongURL := c.PostForm("long_url")
	if newLongURL == "" {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": "Long URL must not be empty"})
		return
	}

	if _, err := h.shortener.Update(urlEntry.ShortCode, newLongURL, user.ID, c.ClientIP()); err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": "Failed to update short link"})
		return
	}

	c.Redirect(http.StatusFound, "/urls")
}

func (h *Handler) DeleteURL(c *gin.Context) {
	urlEntry, user := h.loadOwnedURL(c)
	if urlEntry == nil {
		return
	}

	if err := h.shortener.Delete(urlEntry.ShortCode, user.ID, c.ClientIP()); err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": "Failed to delete short link"})
		return
	}

	c.Redirect(http.StatusFound, "/urls")
}

// OverrideURLMethod lets plain HTML forms submit updates and deletions via a
// _method field, the way the original method-override forms worked.
func (h *Handler) OverrideURLMethod(c *gin.Context) {
	switch strings.ToUpper(c.PostForm("_method")) {
	case http.MethodDelete:
		h.DeleteURL(c)
	default:
		h.UpdateURL(c)
	}
}

func (h *Handler) ShowURLQR(c *gin.Context) {
	urlEntry, _ := h.loadOwnedURL(c)
	if urlEntry == nil {
		return
	}

	shortURL := "http://" + c.Request.Host + "/u/" + urlEntry.ShortCode
	png, err := h.qr.GeneratePNG(shortURL, 256)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": "Failed to render QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// loadOwnedURL applies the per-entry access checks in order: (1) does the
// code exist, (2) is the caller authenticated, (3) does the caller own the
// entry. It writes the error response itself and returns nil when the request
// has already been answered.
func (h *Handler) loadOwnedURL(c *gin.Context) (*models.URL, *models.User) {
	code := c.Param("code")

	urlEntry, err := h.shortener.Get(code)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.HTML(http.StatusNotFound, "404.html", gin.H{"Error": "Short link not found"})
		} else {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": "Something went wrong"})
		}
		return nil, nil
	}

	user := h.currentUser(c)
	if user == nil {
		c.HTML(http.StatusUnauthorized, "error.html", gin.H{"Error": "You must be logged in to manage this short link"})
		return nil, nil
	}

	if urlEntry.UserID != user.ID {
		c.HTML(http.StatusForbidden, "error.html", gin.H{"Error": "You do not own this short link"})
		return nil, nil
	}

	return urlEntry, user
}
