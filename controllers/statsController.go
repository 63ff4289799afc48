package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/ChurchPortal/initializers"
	"github.com/ChurchPortal/services"
	"github.com/gin-gonic/gin"
)

func GetStats(c *gin.Context) {
	stats, err := services.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "pong"})
}

// Healthz reports whether the database and the session store are reachable.
func Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok", "sessions": "ok"}
	healthy := true
	if err := initializers.PingDB(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if err := initializers.Sessions.Ping(ctx); err != nil {
		checks["sessions"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"healthy": healthy, "checks": checks})
}
