package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hmchef/hmchef/internal/api"
	"github.com/hmchef/hmchef/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	uploadHandler *api.UploadHandler,
	validator middleware.TokenValidator,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	root := router.Group("/api")

	authHandler.RegisterRoutes(root)

	// Collection and upload routes require a valid token matching the
	// user parameter.
	protected := root.Group("")
	protected.Use(middleware.AuthMiddleware(validator), middleware.RequireOwnUser())
	{
		recipeHandler.RegisterRoutes(protected)
		uploadHandler.RegisterRoutes(protected)
	}

	return router
}
