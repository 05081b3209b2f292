package http

import (
	"net/http"

	"github.com/velocity-rentals/velocity_rental_service/internal/config"
	"github.com/velocity-rentals/velocity_rental_service/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
}

func NewRouter(
	cfg *config.HTTP,
	tokenService ports.TokenService,
	authHandler *AuthHandler,
	rentalHandler *RentalHandler,
	fleetHandler *FleetHandler,
	adminHandler *AdminHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		me := auth.Group("/me")
		me.Use(AuthMiddleware(tokenService))
		{
			me.GET("", authHandler.GetProfile)
			me.PUT("", authHandler.UpdateProfile)
		}
	}

	// Catalog routes (public, the SPA landing page reads these)
	fleet := router.Group("/fleet")
	{
		fleet.GET("/models", fleetHandler.ListModels)
		fleet.GET("/models/:id", fleetHandler.GetModel)
	}

	// Rental routes
	rentals := router.Group("/rentals")
	rentals.Use(AuthMiddleware(tokenService))
	{
		rentals.GET("/search", rentalHandler.Search)
		rentals.GET("/quote", rentalHandler.Quote)
		rentals.POST("", rentalHandler.Create)
		rentals.GET("", rentalHandler.ListMine)
		rentals.GET("/:id", rentalHandler.Get)
		rentals.DELETE("/:id", rentalHandler.Cancel)
		rentals.GET("/:id/receipt", rentalHandler.Receipt)
	}

	// Admin routes
	admin := router.Group("/admin")
	admin.Use(AuthMiddleware(tokenService), AdminMiddleware())
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.PUT("/users/:id/status", adminHandler.SetUserStatus)

		admin.GET("/calendar", adminHandler.Calendar)
		admin.PUT("/reservations/:id/end", adminHandler.UpdateReservationEnd)
		admin.POST("/reservations/:id/end-now", adminHandler.EndReservationNow)

		admin.GET("/fleet/instances", fleetHandler.ListInstances)
		admin.PUT("/fleet/instances/:id", fleetHandler.SetInstanceStatus)

		admin.GET("/analytics/revenue", adminHandler.Revenue)
		admin.GET("/analytics/occupancy", adminHandler.Occupancy)
		admin.GET("/analytics/popularity", adminHandler.Popularity)
		admin.GET("/analytics/export", adminHandler.ExportCSV)
	}

	return &Router{router: router}, nil
}

func (r *Router) Serve(addr string) error {
	return r.router.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
