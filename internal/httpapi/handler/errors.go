package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"reviewhub/internal/httpapi/apierrors"

	"github.com/gin-gonic/gin"
)

// writeError maps the service error taxonomy onto HTTP responses.
// Validation errors marshal as a field-to-messages object; everything
// else gets a single "detail" message.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	var fieldErrs apierrors.FieldErrors
	var deliveryErr *apierrors.DeliveryError

	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, fieldErrs)
	case errors.Is(err, apierrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": apierrors.ErrNotFound.Error()})
	case errors.Is(err, apierrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": apierrors.ErrUnauthorized.Error()})
	case errors.Is(err, apierrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": apierrors.ErrForbidden.Error()})
	case errors.As(err, &deliveryErr):
		logger.Error("confirmation email delivery failed", "error", deliveryErr.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to send confirmation email"})
	default:
		logger.Error("unhandled error", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

func writeBindError(c *gin.Context) {
	c.JSON(http.StatusBadRequest, apierrors.NewFieldError(
		apierrors.NonFieldErrors, "invalid request body",
	))
}

// idParam parses a numeric path segment. A malformed id means the URL
// names nothing, so it reads as a 404 rather than a validation error.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"detail": apierrors.ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}

// pageParams reads page/page_size with service-side defaults for
// anything absent or malformed.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}
