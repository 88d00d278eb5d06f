package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"estimmo/server/internal/estimator"
)

func SetupRoutes(router *gin.Engine, est *estimator.Estimator, logger *logrus.Logger) {
	handler := NewHandler(est, logger)

	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.POST("/estimate", handler.Estimate)
		api.GET("/municipalities/:code/market", handler.GetMarket)
		api.GET("/health", handler.Health)
	}
}
