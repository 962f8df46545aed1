package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salesnav/utils"
)

// HealthHandler reports liveness.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339Nano)})
}

// DependenciesHandler reports the last Redis and Mongo ping results.
func DependenciesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
