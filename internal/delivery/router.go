package delivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouteRegistrar interface {
	RegisterRoutes(router gin.IRouter)
}

// HealthCheck reports whether the backing store is reachable.
type HealthCheck func(ctx context.Context) error

func NewRouter(logger *logrus.Logger, check HealthCheck, handlers ...RouteRegistrar) *gin.Engine {
	RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))

	router.GET("/health", healthHandler(logger, check))

	for _, h := range handlers {
		h.RegisterRoutes(router)
	}

	router.NoRoute(func(c *gin.Context) {
		ErrorResponse(c, http.StatusNotFound, "Not found", "No route for "+c.Request.Method+" "+c.Request.URL.Path)
	})

	logger.Info("API Routes registered.")
	return router
}

func healthHandler(logger *logrus.Logger, check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				logger.Errorf("Health check failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	}
}
