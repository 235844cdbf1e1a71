package handlers

import (
	"net/http"

	"clinicdesk/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health with the last dependency check.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.CheckedAt.IsZero() && !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "message": "Hi, I'm clinicdesk", "dependencies": status})
}
