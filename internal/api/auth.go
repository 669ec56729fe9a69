package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/access"
	"github.com/cloudcrave/craveops/internal/auth"
	"github.com/cloudcrave/craveops/internal/middleware"
	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/store"
)

const sessionTTL = 24 * time.Hour

// AuthHandler handles login, registration, and logout — the only public
// endpoints. There are no passwords: login resolves an identity by email
// and issues a session token. Hardening that is explicitly out of scope;
// the token exists so every mutation is still re-checked server-side.
type AuthHandler struct {
	access    *access.Controller
	sessions  store.Sessions
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthHandler(access *access.Controller, sessions store.Sessions, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{access: access, sessions: sessions, jwtSecret: jwtSecret, logger: logger}
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type registerRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	CompanyName string `json:"company_name"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.access.Login(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no access identity found for that email"})
			return
		}
		if errors.Is(err, access.ErrPendingApproval) {
			c.JSON(http.StatusForbidden, gin.H{"error": "your access request is still pending approval"})
			return
		}
		respondError(c, h.logger, err)
		return
	}

	h.issueSession(c, user, http.StatusOK)
}

// Register handles POST /v1/auth/register
//
// An approved registrant becomes the active session immediately; a pending
// one gets a confirmation and no token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.access.Register(c.Request.Context(), req.Name, req.Email, req.CompanyName)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if result.Pending {
		c.JSON(http.StatusAccepted, gin.H{
			"pending": true,
			"message": "access request submitted; a moderator will review it",
		})
		return
	}

	h.issueSession(c, result.User, http.StatusCreated)
}

func (h *AuthHandler) issueSession(c *gin.Context, user models.User, status int) {
	token, err := auth.GenerateToken(user.ID, user.OrgID, string(user.Role), h.jwtSecret, sessionTTL)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if err := h.sessions.SetCurrent(c.Request.Context(), user.ID, sessionTTL); err != nil {
		h.logger.Error("failed to store session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(status, sessionResponse{Token: token, User: user})
}

// Logout handles POST /v1/auth/logout (authenticated).
func (h *AuthHandler) Logout(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	if err := h.sessions.Clear(c.Request.Context(), actor.ID); err != nil {
		h.logger.Error("failed to clear session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
