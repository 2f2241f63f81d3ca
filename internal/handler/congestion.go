package handler

import (
	"net/http"

	"everywhere/internal/model"
	"everywhere/internal/service"

	"github.com/gin-gonic/gin"
)

// CongestionHandler handles congestion HTTP requests
type CongestionHandler struct {
	congestionService *service.CongestionService
}

// NewCongestionHandler creates a new congestion handler
func NewCongestionHandler(congestionService *service.CongestionService) *CongestionHandler {
	return &CongestionHandler{
		congestionService: congestionService,
	}
}

// Congestion handles GET /api/v1/congestion?spaceId=&latitude=&longitude=
func (h *CongestionHandler) Congestion(c *gin.Context) {
	var req model.CongestionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.congestionService.Congestion(c.Request.Context(), *req.SpaceID, *req.Latitude, *req.Longitude)
	if err != nil {
		abortWithError(c, "Congestion prediction failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
