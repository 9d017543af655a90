package handlers

import (
	"errors"
	"net/http"

	"github.com/shujie1st/tinyapp/internal/services"
	"github.com/shujie1st/tinyapp/pkg/utils"

	"github.com/gin-gonic/gin"
)

const visitorCookieName = "visitor_id"

// FollowShortLink is the public face of a short link. It works for anonymous
// visitors: only the existence check applies, never authentication or
// ownership.
func (h *Handler) FollowShortLink(c *gin.Context) {
	code := c.Param("code")

	urlEntry, err := h.shortener.Get(code)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.HTML(http.StatusNotFound, "404.html", gin.H{"Error": "Short link not found"})
		} else {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": "Something went wrong"})
		}
		return
	}

	visitorID := h.ensureVisitorID(c)

	if _, err := h.stats.RecordVisit(code, visitorID, c.Request.UserAgent(), c.Request.Referer(), c.ClientIP()); err != nil {
		// The entry vanished between lookup and visit write, or the write
		// failed; the redirect still goes through.
		h.logger.Warn("Failed to record visit", "code", code, "error", err)
	}

	c.Redirect(http.StatusFound, urlEntry.LongURL)
}

// ensureVisitorID reads the long-lived visitor correlation cookie, minting a
// fresh one on the first traversal. It is independent of the login session.
func (h *Handler) ensureVisitorID(c *gin.Context) string {
	if visitorID, err := c.Cookie(visitorCookieName); err == nil && visitorID != "" {
		return visitorID
	}

	visitorID := utils.NewVisitorID()
	c.SetCookie(visitorCookieName, visitorID, h.cfg.VisitorCookieMaxAge, "/", "", false, true)
	return visitorID
}
