package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stelae-dev/stelae/db"
	"github.com/stelae-dev/stelae/internal/auth"
	"github.com/stelae-dev/stelae/internal/models"
	"github.com/stelae-dev/stelae/internal/testutils"
	"github.com/stelae-dev/stelae/internal/utils"
)

func setupAuthTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutils.SetupDB(t)
	if err := auth.Init("test-secret", time.Hour); err != nil {
		t.Fatalf("auth.Init: %v", err)
	}
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/x", AuthMiddleware(), func(ctx *gin.Context) {
		user, err := utils.GetCurrentUser(ctx)
		if err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
	})
	return r
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	setupAuthTest(t)
	r := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareWrongScheme(t *testing.T) {
	setupAuthTest(t)
	r := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	setupAuthTest(t)
	r := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareValidTokenLoadsUser(t *testing.T) {
	setupAuthTest(t)

	user := models.User{Username: "alice", Email: "alice@example.com", Type: "user", PasswordHash: "x"}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	r := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareDeletedUser(t *testing.T) {
	setupAuthTest(t)

	// Token for a user id that no longer exists.
	token, err := auth.GenerateToken(999, "ghost")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	r := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutils.SetupDB(t)
	if err := auth.Init("test-secret", time.Millisecond); err != nil {
		t.Fatalf("auth.Init: %v", err)
	}

	user := models.User{Username: "bob", Email: "bob@example.com", Type: "user", PasswordHash: "x"}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	r := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}
