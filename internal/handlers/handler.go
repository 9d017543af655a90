package handlers

import (
	"log/slog"

	"github.com/shujie1st/tinyapp/internal/config"
	"github.com/shujie1st/tinyapp/internal/models"
	"github.com/shujie1st/tinyapp/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	cfg       config.Config
	logger    *slog.Logger
	users     *services.UserService
	shortener *services.ShortenerService
	stats     *services.StatsService
	audit     *services.AuditService
	qr        *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	users *services.UserService,
	shortener *services.ShortenerService,
	stats *services.StatsService,
	audit *services.AuditService,
	qr *services.QRService,
) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		users:     users,
		shortener: shortener,
		stats:     stats,
		audit:     audit,
		qr:        qr,
	}
}

// currentUser resolves the session to a user account. A session whose user id
// no longer exists in the directory is treated as anonymous.
func (h *Handler) currentUser(c *gin.Context) *models.User {
	if val, exists := c.Get("user"); exists {
		if user, ok := val.(*models.User); ok {
			return user
		}
	}

	session := sessions.Default(c)
	idVal := session.Get("user_id")
	if idVal == nil {
		return nil
	}
	id, ok := idVal.(string)
	if !ok {
		return nil
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		return nil
	}
	return user
}

func (h *Handler) isLoggedIn(c *gin.Context) bool {
	return h.currentUser(c) != nil
}
