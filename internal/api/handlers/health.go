package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jophkins/lastshoot/internal/services"
)

func HealthCheck(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{"storage": "ok", "database": "ok"}

	if err := services.GetMinioService().CheckConnection(); err != nil {
		checks["storage"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := services.CheckPostgres(); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
}
