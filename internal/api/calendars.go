package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/calendar"
	"github.com/cloudcrave/craveops/internal/middleware"
	"github.com/cloudcrave/craveops/internal/models"
)

type CalendarHandler struct {
	calendar *calendar.Controller
	logger   *zap.Logger
}

func NewCalendarHandler(calendar *calendar.Controller, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, logger: logger}
}

// List handles GET /v1/calendars?brand_id=...
func (h *CalendarHandler) List(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var brandID *uuid.UUID
	if raw := c.Query("brand_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid brand id"})
			return
		}
		brandID = &id
	}
	c.JSON(http.StatusOK, h.calendar.List(actor, brandID))
}

type createCalendarRequest struct {
	BrandID uuid.UUID `json:"brand_id" binding:"required"`
	Name    string    `json:"name"`
}

// Create handles POST /v1/calendars.
func (h *CalendarHandler) Create(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req createCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cal, err := h.calendar.Create(c.Request.Context(), actor, req.BrandID, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, cal)
}

type saveCalendarRequest struct {
	Name    string                 `json:"name"`
	Entries []models.CalendarEntry `json:"entries"`
}

// Save handles PUT /v1/calendars/:id — whole-calendar replacement from the
// editor.
func (h *CalendarHandler) Save(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	calID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calendar id"})
		return
	}

	var req saveCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cal, err := h.calendar.Save(c.Request.Context(), actor, calID, req.Name, req.Entries)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

type suggestRequest struct {
	Overwrite bool `json:"overwrite"`
}

// Suggest handles POST /v1/calendars/:id/entries/:entryID/suggest.
func (h *CalendarHandler) Suggest(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	calID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calendar id"})
		return
	}
	entryID, err := uuid.Parse(c.Param("entryID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	var req suggestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	entry, err := h.calendar.Suggest(c.Request.Context(), actor, calID, entryID, req.Overwrite)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
