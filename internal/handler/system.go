package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BuildInfo identifies the running binary
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// SystemHandler serves liveness, version and smoke-test endpoints
type SystemHandler struct {
	build BuildInfo
	port  int
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(build BuildInfo, port int) *SystemHandler {
	return &SystemHandler{build: build, port: port}
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"service":    "everywhere-recommendation",
		"version":    h.build.Version,
		"build_time": h.build.BuildTime,
		"git_commit": h.build.GitCommit,
	})
}

// Version handles GET /version
func (h *SystemHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.build.Version,
		"build_time": h.build.BuildTime,
		"git_commit": h.build.GitCommit,
	})
}

// Hello handles GET /test/hello
func (h *SystemHandler) Hello(c *gin.Context) {
	c.String(http.StatusOK, "Hello Hackathon BE! Server is Running on %d.", h.port)
}

// Echo handles GET /test/echo?name=&id=
func (h *SystemHandler) Echo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "OK",
		"message":       "Request received successfully.",
		"received_name": c.Query("name"),
		"received_id":   c.Query("id"),
	})
}

// NotFound is the JSON fallback for unknown routes
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
}
