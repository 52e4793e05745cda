package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stelae-dev/stelae/db"
	"github.com/stelae-dev/stelae/internal/auth"
	"github.com/stelae-dev/stelae/internal/middleware"
	"github.com/stelae-dev/stelae/internal/models"
	"github.com/stelae-dev/stelae/internal/testutils"
	"golang.org/x/crypto/bcrypt"
)

// newTestRouter mounts the API the same way the production router does,
// without the CORS layer.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	testutils.SetupDB(t)

	if err := auth.Init("test-secret", time.Hour); err != nil {
		t.Fatalf("auth.Init: %v", err)
	}

	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/health", HealthCheck)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", Register)
	authGroup.POST("/login", Login)
	authGroup.GET("/me", middleware.AuthMiddleware(), Me)

	designs := api.Group("/designs", middleware.AuthMiddleware())
	designs.POST("", CreateDesign)
	designs.GET("", ListDesigns)
	designs.GET("/:id", GetDesign)
	designs.PUT("/:id", UpdateDesign)
	designs.DELETE("/:id", DeleteDesign)

	library := api.Group("/library/items", middleware.AuthMiddleware())
	library.POST("", CreateLibraryItem)
	library.GET("", ListLibraryItems)
	library.PUT("/:id", UpdateLibraryItem)
	library.DELETE("/:id", DeleteLibraryItem)

	orders := api.Group("/orders", middleware.AuthMiddleware())
	orders.POST("", CreateOrder)
	orders.GET("", ListOrders)
	orders.GET("/:id", GetOrder)
	orders.PATCH("/:id", UpdateOrder)
	orders.DELETE("/:id", DeleteOrder)

	return r
}

func seedUser(t *testing.T, username, email, password string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		Type:         "user",
		PasswordHash: string(hash),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope %q: %v", w.Body.String(), err)
	}

	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()

	env := decodeEnvelope(t, w)
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data %q: %v", string(env.Data), err)
	}

	return env
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("got status %d, want %d: %s", w.Code, want, w.Body.String())
	}
}
