package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stelae-dev/stelae/internal/handlers"
	"github.com/stelae-dev/stelae/internal/httpx"
	"github.com/stelae-dev/stelae/internal/middleware"
)

func NewRouter(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())

	// Panics must never leak internals to the client.
	r.Use(gin.CustomRecovery(func(ctx *gin.Context, _ any) {
		httpx.AbortError(ctx, http.StatusInternalServerError, "Internal server error")
	}))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		designs := api.Group("/designs", middleware.AuthMiddleware())
		{
			designs.POST("", handlers.CreateDesign)
			designs.GET("", handlers.ListDesigns)
			designs.GET("/:id", handlers.GetDesign)
			designs.PUT("/:id", handlers.UpdateDesign)
			designs.DELETE("/:id", handlers.DeleteDesign)
		}

		library := api.Group("/library/items", middleware.AuthMiddleware())
		{
			library.POST("", handlers.CreateLibraryItem)
			library.GET("", handlers.ListLibraryItems)
			library.PUT("/:id", handlers.UpdateLibraryItem)
			library.DELETE("/:id", handlers.DeleteLibraryItem)
		}

		orders := api.Group("/orders", middleware.AuthMiddleware())
		{
			orders.POST("", handlers.CreateOrder)
			orders.GET("", handlers.ListOrders)
			orders.GET("/:id", handlers.GetOrder)
			orders.PATCH("/:id", handlers.UpdateOrder)
			orders.DELETE("/:id", handlers.DeleteOrder)
		}
	}

	return r
}
