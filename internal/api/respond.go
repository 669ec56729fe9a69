package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/access"
	"github.com/cloudcrave/craveops/internal/brands"
	"github.com/cloudcrave/craveops/internal/calendar"
	"github.com/cloudcrave/craveops/internal/genai"
	"github.com/cloudcrave/craveops/internal/mentorship"
	"github.com/cloudcrave/craveops/internal/notify"
	"github.com/cloudcrave/craveops/internal/tasks"
)

// respondError maps controller errors onto HTTP statuses. Unexpected
// errors are logged and returned as a generic 500 so internals never leak.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, access.ErrValidation),
		errors.Is(err, brands.ErrValidation),
		errors.Is(err, calendar.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, access.ErrNotFound),
		errors.Is(err, tasks.ErrNotFound),
		errors.Is(err, brands.ErrNotFound),
		errors.Is(err, calendar.ErrNotFound),
		errors.Is(err, mentorship.ErrNotFound),
		errors.Is(err, notify.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, access.ErrForbidden),
		errors.Is(err, access.ErrReservedAccount),
		errors.Is(err, tasks.ErrForbidden),
		errors.Is(err, brands.ErrForbidden),
		errors.Is(err, calendar.ErrForbidden),
		errors.Is(err, mentorship.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, access.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, mentorship.ErrAlreadyClaimed),
		errors.Is(err, mentorship.ErrNotClaimable),
		errors.Is(err, tasks.ErrNotReviewable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, genai.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "a summary is already being generated"})

	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
