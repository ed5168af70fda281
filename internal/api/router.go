package api

import (
	"os"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the analyzer's routes.
func NewRouter(h *Handler) *gin.Engine {
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/predict", h.Predict)
	router.GET("/health", h.Health)

	return router
}
