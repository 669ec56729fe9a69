package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/middleware"
	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/tasks"
)

type TaskHandler struct {
	tasks  *tasks.Controller
	logger *zap.Logger
}

func NewTaskHandler(tasks *tasks.Controller, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

// List handles GET /v1/tasks — the actor's visible task set with display
// names resolved.
func (h *TaskHandler) List(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	c.JSON(http.StatusOK, h.tasks.List(actor))
}

// Get handles GET /v1/tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	task, err := h.tasks.Get(actor, taskID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

type createTaskRequest struct {
	BrandID        uuid.UUID           `json:"brand_id" binding:"required"`
	ServiceType    models.ServiceType  `json:"service_type"`
	OwnerID        uuid.UUID           `json:"owner_id"`
	AssignedBy     string              `json:"assigned_by"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Category       models.TaskCategory `json:"category"`
	Type           models.TaskType     `json:"type"`
	Frequency      models.Frequency    `json:"frequency"`
	Status         models.TaskStatus   `json:"status"`
	DueDate        string              `json:"due_date"`
	EstimatedHours float64             `json:"estimated_hours"`
	HoursSpent     float64             `json:"hours_spent"`
}

// Create handles POST /v1/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != "" && !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task status"})
		return
	}

	task, err := h.tasks.Submit(c.Request.Context(), actor, tasks.SubmitInput{
		BrandID:        req.BrandID,
		ServiceType:    req.ServiceType,
		OwnerID:        req.OwnerID,
		AssignedBy:     req.AssignedBy,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Type:           req.Type,
		Frequency:      req.Frequency,
		Status:         req.Status,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		HoursSpent:     req.HoursSpent,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

type editTaskRequest struct {
	BrandID        *uuid.UUID           `json:"brand_id"`
	ServiceType    *models.ServiceType  `json:"service_type"`
	Title          *string              `json:"title"`
	Description    *string              `json:"description"`
	Category       *models.TaskCategory `json:"category"`
	Type           *models.TaskType     `json:"type"`
	Frequency      *models.Frequency    `json:"frequency"`
	Status         *models.TaskStatus   `json:"status"`
	DueDate        *string              `json:"due_date"`
	ProgressUpdate *string              `json:"progress_update"`
	EstimatedHours *float64             `json:"estimated_hours"`
	HoursSpent     *float64             `json:"hours_spent"`
}

// Edit handles PATCH /v1/tasks/:id.
func (h *TaskHandler) Edit(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req editTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Edit(c.Request.Context(), actor, taskID, tasks.EditInput{
		BrandID:        req.BrandID,
		ServiceType:    req.ServiceType,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Type:           req.Type,
		Frequency:      req.Frequency,
		Status:         req.Status,
		DueDate:        req.DueDate,
		ProgressUpdate: req.ProgressUpdate,
		EstimatedHours: req.EstimatedHours,
		HoursSpent:     req.HoursSpent,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

// Comment handles POST /v1/tasks/:id/comments.
func (h *TaskHandler) Comment(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.tasks.AddComment(c.Request.Context(), actor, taskID, req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

type reviewRequest struct {
	Decision tasks.Decision `json:"decision" binding:"required"`
	Comment  string         `json:"comment"`
}

// Review handles POST /v1/tasks/:id/review. The default comments mirror
// the ones the review panel pre-filled.
func (h *TaskHandler) Review(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Decision.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be approve, reject, or block"})
		return
	}
	if req.Comment == "" {
		switch req.Decision {
		case tasks.DecisionApprove:
			req.Comment = "Completion verified."
		case tasks.DecisionReject:
			req.Comment = "Sent back for refinement."
		case tasks.DecisionBlock:
			req.Comment = "Critical blocker identified by lead."
		}
	}

	task, err := h.tasks.Review(c.Request.Context(), actor, taskID, req.Decision, req.Comment)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
