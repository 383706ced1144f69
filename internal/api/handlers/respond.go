package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reviewhub/reviews-backend/internal/services"
	"github.com/reviewhub/reviews-backend/internal/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP
// statuses. Anything outside the taxonomy is a 500 with no detail.
func respondServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.SendError(c, http.StatusBadRequest, ve.Message)
	case errors.Is(err, services.ErrUnauthenticated):
		utils.SendError(c, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, services.ErrForbidden):
		utils.SendError(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, "not found")
	default:
		utils.SendError(c, http.StatusInternalServerError, "internal server error")
	}
}
