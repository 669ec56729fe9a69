package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/middleware"
	"github.com/cloudcrave/craveops/internal/store"
)

// PrefsHandler serves the per-user theme preference.
type PrefsHandler struct {
	sessions store.Sessions
	logger   *zap.Logger
}

func NewPrefsHandler(sessions store.Sessions, logger *zap.Logger) *PrefsHandler {
	return &PrefsHandler{sessions: sessions, logger: logger}
}

// GetTheme handles GET /v1/prefs/theme.
func (h *PrefsHandler) GetTheme(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	theme, err := h.sessions.Theme(c.Request.Context(), actor.ID)
	if err != nil {
		h.logger.Error("failed to load theme", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load theme"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

// SetTheme handles PUT /v1/prefs/theme.
func (h *PrefsHandler) SetTheme(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessions.SetTheme(c.Request.Context(), actor.ID, req.Theme); err != nil {
		h.logger.Error("failed to store theme", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store theme"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
