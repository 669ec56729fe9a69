package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/middleware"
	"github.com/cloudcrave/craveops/internal/notify"
)

type NotificationHandler struct {
	notify *notify.Service
	logger *zap.Logger
}

func NewNotificationHandler(notify *notify.Service, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notify: notify, logger: logger}
}

// List handles GET /v1/notifications — the actor's own, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	c.JSON(http.StatusOK, h.notify.List(actor))
}

// MarkRead handles POST /v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	notifID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.notify.MarkRead(c.Request.Context(), actor, notifID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllRead handles POST /v1/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	if err := h.notify.MarkAllRead(c.Request.Context(), actor); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
