package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/access"
	"github.com/cloudcrave/craveops/internal/mentorship"
	"github.com/cloudcrave/craveops/internal/middleware"
	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/state"
	"github.com/cloudcrave/craveops/internal/visibility"
)

type UserHandler struct {
	app        *state.App
	access     *access.Controller
	mentorship *mentorship.Controller
	logger     *zap.Logger
}

func NewUserHandler(app *state.App, access *access.Controller, mentorship *mentorship.Controller, logger *zap.Logger) *UserHandler {
	return &UserHandler{app: app, access: access, mentorship: mentorship, logger: logger}
}

// List handles GET /v1/users — the actor's visible user set.
func (h *UserHandler) List(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var users []models.User
	h.app.View(func(cols *state.Collections) {
		users = visibility.Users(actor, cols.Users)
	})
	c.JSON(http.StatusOK, users)
}

// Me handles GET /v1/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	c.JSON(http.StatusOK, actor)
}

type updateUserRequest struct {
	Role               *models.Role               `json:"role"`
	RegistrationStatus *models.RegistrationStatus `json:"registration_status"`
}

// Update handles PATCH /v1/users/:id — admin moderation of role and
// approval status.
func (h *UserHandler) Update(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.access.UpdateUser(c.Request.Context(), actor, userID, access.UserUpdates{
		Role:               req.Role,
		RegistrationStatus: req.RegistrationStatus,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.access.DeleteUser(c.Request.Context(), actor, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Claim handles POST /v1/users/:id/claim — a lead recruiting an unassigned
// member into their squad.
func (h *UserHandler) Claim(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.mentorship.Claim(c.Request.Context(), actor, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type assignMentorRequest struct {
	// MentorID null clears the assignment.
	MentorID *uuid.UUID `json:"mentor_id"`
}

// AssignMentor handles PUT /v1/users/:id/mentor.
func (h *UserHandler) AssignMentor(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req assignMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.mentorship.Assign(c.Request.Context(), actor, userID, req.MentorID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
