package api

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts all endpoints under /api.
func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/example", s.example)
		api.POST("/generate-card", s.generateCard)
		api.POST("/generate-cover", s.generateCover)
	}
}
