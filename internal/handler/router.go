package handler

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions configures the HTTP router
type RouterOptions struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
	MetricsPath    string // empty disables /metrics
}

// NewRouter wires middleware and routes onto a new gin engine
func NewRouter(
	opts RouterOptions,
	system *SystemHandler,
	congestion *CongestionHandler,
	recommendation *RecommendationHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitList(opts.AllowedOrigins)
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"*"}
	}
	corsConfig.AllowMethods = splitList(opts.AllowedMethods)
	corsConfig.AllowHeaders = splitList(opts.AllowedHeaders)
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/health", system.Health)
	router.GET("/version", system.Version)

	if opts.MetricsPath != "" {
		router.GET(opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	test := router.Group("/test")
	{
		test.GET("/hello", system.Hello)
		test.GET("/echo", system.Echo)
	}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/congestion", congestion.Congestion)
		apiV1.POST("/recommendation", recommendation.Recommend)
	}

	router.NoRoute(NotFound)

	return router
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
