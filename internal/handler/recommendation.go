package handler

import (
	"net/http"

	"everywhere/internal/model"
	"everywhere/internal/service"

	"github.com/gin-gonic/gin"
)

// RecommendationHandler handles recommendation HTTP requests
type RecommendationHandler struct {
	recommendationService *service.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendationService *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
	}
}

// Recommend handles POST /api/v1/recommendation
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req model.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	items, err := h.recommendationService.Recommend(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, "Recommendation failed", err)
		return
	}

	c.JSON(http.StatusOK, items)
}
