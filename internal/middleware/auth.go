package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cloudcrave/craveops/internal/auth"
	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/store"
)

const ContextKeyActor = "actor"

// ActorLookup resolves a user id to the current user record. The
// middleware resolves the actor fresh per request, so role and approval
// changes apply immediately — a token issued before a suspension cannot
// keep acting.
type ActorLookup func(id uuid.UUID) (models.User, error)

// AuthMiddleware validates the bearer token, checks the session is still
// current, and stores the freshly resolved actor in the request context.
func AuthMiddleware(secret string, sessions store.Sessions, lookup ActorLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format, expected: Bearer <token>",
			})
			return
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		active, err := sessions.IsCurrent(c.Request.Context(), claims.UserID)
		if err != nil || !active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "session is no longer active",
			})
			return
		}

		actor, err := lookup(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unknown identity",
			})
			return
		}
		if actor.RegistrationStatus != models.RegistrationApproved {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "access suspended",
			})
			return
		}

		c.Set(ContextKeyActor, actor)
		c.Next()
	}
}

// GetActor returns the resolved actor for the request, or false when the
// middleware did not run.
func GetActor(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(ContextKeyActor)
	if !exists {
		return models.User{}, false
	}
	actor, ok := val.(models.User)
	return actor, ok
}
