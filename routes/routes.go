package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	api := router.Group("/" + utils.APIVersion)
	{
		initUserRoutes(api)
		initAdminRoutes(api)
	}

	return router
}
