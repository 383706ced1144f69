package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reviewhub/reviews-backend/internal/services"
	"github.com/reviewhub/reviews-backend/internal/utils"
)

// SentimentHandler proxies the web client's same-origin classifier
// calls to the external service. Results are advisory UI only; the
// authoritative classification happens during review submission.
type SentimentHandler struct {
	analyzer services.SentimentAnalyzer
}

func NewSentimentHandler(analyzer services.SentimentAnalyzer) *SentimentHandler {
	return &SentimentHandler{analyzer: analyzer}
}

func (h *SentimentHandler) Analyze(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request body")
		return
	}
	c.JSON(http.StatusOK, h.analyzer.Analyze(c.Request.Context(), req.Text))
}
