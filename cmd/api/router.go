package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ayurveda-backend/internal/shared/middleware"
	"ayurveda-backend/internal/shared/response"
	"ayurveda-backend/pkg/container"
	"ayurveda-backend/pkg/jwt"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIPMiddleware(),
		middleware.Logger(),
		middleware.CORS(c.Config.HTTP.AllowedOrigins),
		middleware.Metrics(),
	)

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupDoctorRoutes(v1, c)
		setupAdminRoutes(v1, c)
		setupReviewRoutes(v1, c)
	}

	return router
}

// ========================================
// DOCTOR ROUTES
// ========================================
func setupDoctorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	doctors := v1.Group("/doctors")
	{
		doctors.GET("", c.DoctorHandler.ListDoctors)
		doctors.GET("/:id", c.DoctorHandler.GetDoctor)
	}

	me := v1.Group("/doctors/me")
	me.Use(middleware.AuthMiddleware(c.JWTManager), middleware.RequireRole(jwt.RoleDoctor))
	{
		me.GET("", c.DoctorHandler.GetProfile)
		me.PUT("", c.DoctorHandler.UpdateProfile)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.RequireRole(jwt.RoleAdmin))
	{
		admin.POST("/doctors", c.DoctorHandler.CreateDoctor)
		admin.PATCH("/doctors/:id/status", c.DoctorHandler.SetActive)
	}
}

// ========================================
// REVIEW ROUTES
// ========================================
func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// Public review routes
	public := v1.Group("/reviews/public")
	{
		public.POST("",
			middleware.RateLimit(c.Config.Review.SubmitRPS, c.Config.Review.SubmitBurst),
			c.ReviewHandler.SubmitReview,
		)
		public.GET("", c.ReviewHandler.ListPublicReviews)
	}

	// Moderation routes (doctor: own reviews, admin: all)
	reviews := v1.Group("/reviews")
	reviews.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRole(jwt.RoleDoctor, jwt.RoleAdmin),
	)
	{
		reviews.GET("", c.ReviewHandler.ListReviews)
		reviews.GET("/statistics", c.ReviewHandler.GetStatistics)
		reviews.GET("/:id", c.ReviewHandler.GetReview)
		reviews.PATCH("/:id/status", c.ReviewHandler.UpdateStatus)
		reviews.DELETE("/:id", c.ReviewHandler.DeleteReview)
	}
}

// ========================================
// HEALTH CHECK
// ========================================

// healthCheckHandler: database là dependency bắt buộc (503 khi down),
// redis chỉ làm status "degraded"
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		overall := "ok"

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			overall = "unavailable"
			status = http.StatusServiceUnavailable
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error"
				overall = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disabled"
			if overall == "ok" {
				overall = "degraded"
			}
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = "error"
				if overall == "ok" {
					overall = "degraded"
				}
			}
		}

		body := gin.H{
			"success":   status == http.StatusOK,
			"status":    overall,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		}
		if appCtx.DB != nil {
			if stats, err := appCtx.DB.Stats(); err == nil {
				body["pool"] = stats
			}
		}

		c.JSON(status, body)
	}
}
