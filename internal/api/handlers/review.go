package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reviewhub/reviews-backend/internal/api/middleware"
	"github.com/reviewhub/reviews-backend/internal/services"
	"github.com/reviewhub/reviews-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List is the public review feed: a page of reviews plus stats over
// the whole dataset. The userId query parameter narrows the listing
// to one author's reviews for the profile view.
func (h *ReviewHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	var userID *uint
	if raw := c.Query("userId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.SendValidationError(c, "invalid user ID")
			return
		}
		id := uint(parsed)
		userID = &id
	}

	resp, err := h.reviewService.List(c.Request.Context(), page, limit, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request body")
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := reviewID(c)
	if !ok {
		return
	}
	if err := h.reviewService.Delete(c.Request.Context(), middleware.Identity(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) React(c *gin.Context) {
	id, ok := reviewID(c)
	if !ok {
		return
	}

	var req struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request body")
		return
	}

	likes, dislikes, err := h.reviewService.React(c.Request.Context(), middleware.Identity(c), id, req.Type)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes, "dislikes": dislikes})
}

func (h *ReviewHandler) Flag(c *gin.Context) {
	id, ok := reviewID(c)
	if !ok {
		return
	}

	flagged, err := h.reviewService.Flag(c.Request.Context(), middleware.Identity(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_flagged": flagged})
}

func reviewID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("review_id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "invalid review ID")
		return 0, false
	}
	return uint(id), true
}
