package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/middleware"
	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/tasks"
)

// Analyzer is the seam to the summary requester.
type Analyzer interface {
	AnalyzeTasks(ctx context.Context, tasks []models.StaffTask) (*models.ManagementSummary, error)
}

// SummaryHandler produces the AI workload report over the actor's visible
// task set. A failed call populates nothing and mutates nothing.
type SummaryHandler struct {
	tasks    *tasks.Controller
	analyzer Analyzer
	logger   *zap.Logger
}

func NewSummaryHandler(tasks *tasks.Controller, analyzer Analyzer, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{tasks: tasks, analyzer: analyzer, logger: logger}
}

// Generate handles POST /v1/summary.
func (h *SummaryHandler) Generate(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	visible := h.tasks.List(actor)
	summary, err := h.analyzer.AnalyzeTasks(c.Request.Context(), visible)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
