package handlers

import (
	"net/http"

	"github.com/shujie1st/tinyapp/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter, templatePath string, staticPath string) *gin.Engine {
	r := gin.Default()

	if templatePath != "" {
		r.LoadHTMLGlob(templatePath)
	}
	if staticPath != "" {
		r.Static("/static", staticPath)
	}

	// Middleware
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   h.cfg.SessionMaxAge,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("tinyapp_session", store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Public Routes
	r.GET("/", h.ShowIndex)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.HandleLogin)
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.HandleRegister)
	r.POST("/logout", h.Logout)

	// Pages requiring a login up front
	authorized := r.Group("/urls")
	authorized.Use(h.AuthRequired())
	{
		authorized.GET("", h.ListURLs)
		authorized.GET("/new", h.ShowNewURLForm)
		authorized.POST("", h.CreateURL)
	}

	// Per-entry routes check existence before authentication, so they run
	// their own gate instead of the group middleware.
	r.GET("/urls/:code", h.ShowURL)
	r.PUT("/urls/:code", h.UpdateURL)
	r.DELETE("/urls/:code", h.DeleteURL)
	r.POST("/urls/:code", h.OverrideURLMethod)
	r.GET("/urls/:code/qr", h.ShowURLQR)

	// Public short link
	r.GET("/u/:code", h.FollowShortLink)

	return r
}
