package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/brands"
	"github.com/cloudcrave/craveops/internal/middleware"
	"github.com/cloudcrave/craveops/internal/models"
)

type BrandHandler struct {
	brands *brands.Controller
	logger *zap.Logger
}

func NewBrandHandler(brands *brands.Controller, logger *zap.Logger) *BrandHandler {
	return &BrandHandler{brands: brands, logger: logger}
}

// List handles GET /v1/brands — the actor's visible brands.
func (h *BrandHandler) List(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	c.JSON(http.StatusOK, h.brands.List(actor))
}

type brandRequest struct {
	Name     string               `json:"name"`
	Services []models.ServiceType `json:"services"`
	LeadID   *uuid.UUID           `json:"lead_id"`
}

// Create handles POST /v1/brands.
func (h *BrandHandler) Create(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req brandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand, err := h.brands.Create(c.Request.Context(), actor, brands.Input{
		Name:     req.Name,
		Services: req.Services,
		LeadID:   req.LeadID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, brand)
}

// Update handles PATCH /v1/brands/:id.
func (h *BrandHandler) Update(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid brand id"})
		return
	}

	var req brandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand, err := h.brands.Update(c.Request.Context(), actor, brandID, brands.Input{
		Name:     req.Name,
		Services: req.Services,
		LeadID:   req.LeadID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}
