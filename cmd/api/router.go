package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"personaldata-backend/internal/shared/middleware"
	"personaldata-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupPersonRoutes(v1, c)
	}

	return router
}

func setupPersonRoutes(v1 *gin.RouterGroup, c *container.Container) {
	persons := v1.Group("/persons")
	{
		persons.GET("", c.PersonHandler.ListPersons)
		persons.POST("", c.PersonHandler.CreatePerson)
		persons.PUT("/:id", c.PersonHandler.UpdatePerson)
	}
}

// healthCheckHandler reports store and cache connectivity.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		storeStatus := "ok (memory)"
		if appCtx.DB != nil {
			storeStatus = "ok"
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				storeStatus = "error: " + err.Error()
				health["status"] = "degraded"
			}
		}

		cacheStatus := "disabled"
		if appCtx.Cache != nil {
			cacheStatus = "ok"
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = "error: " + err.Error()
			}
		}

		health["services"] = gin.H{
			"store": storeStatus,
			"cache": cacheStatus,
		}

		statusCode := http.StatusOK
		if health["status"] != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
