package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reviewhub/reviews-backend/internal/api/middleware"
	"github.com/reviewhub/reviews-backend/internal/services"
)

type AdminHandler struct {
	reviewService *services.ReviewService
}

func NewAdminHandler(reviewService *services.ReviewService) *AdminHandler {
	return &AdminHandler{reviewService: reviewService}
}

// ListReviews is the moderation table: paginated, searchable across
// comment and author name.
func (h *AdminHandler) ListReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")

	resp, err := h.reviewService.ListForAdmin(c.Request.Context(), middleware.Identity(c), page, limit, search)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
