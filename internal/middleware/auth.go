package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stelae-dev/stelae/db"
	"github.com/stelae-dev/stelae/internal/auth"
	"github.com/stelae-dev/stelae/internal/httpx"
	"github.com/stelae-dev/stelae/internal/models"
	"github.com/stelae-dev/stelae/internal/types"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves the caller from the Authorization header. The
// full user record is loaded so that a token for a since-deleted account
// is rejected, and stored in the context for handlers to scope queries.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if strings.TrimSpace(authHeader) == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
			httpx.AbortError(ctx, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])

		userID, err := auth.ParseUserID(tokenString)

		if err != nil {
			httpx.AbortError(ctx, http.StatusUnauthorized, "Invalid token")
			return
		}

		var user models.User

		if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			httpx.AbortError(ctx, http.StatusUnauthorized, "User not found")
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}
