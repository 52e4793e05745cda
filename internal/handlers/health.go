package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stelae-dev/stelae/internal/httpx"
)

func HealthCheck(ctx *gin.Context) {
	httpx.OK(ctx, "stelae is running", gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
