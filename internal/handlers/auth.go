package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stelae-dev/stelae/db"
	"github.com/stelae-dev/stelae/internal/auth"
	"github.com/stelae-dev/stelae/internal/httpx"
	"github.com/stelae-dev/stelae/internal/logger"
	"github.com/stelae-dev/stelae/internal/models"
	"github.com/stelae-dev/stelae/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	Phone    string `json:"phone"`
	Type     string `json:"type" binding:"required,oneof=user admin"`
}

type LoginRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LoginResponse struct {
	Token            string       `json:"token"`
	ExpiresInSeconds int64        `json:"expiresInSeconds"`
	User             UserResponse `json:"user"`
}

func toUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Type:      user.Type,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		httpx.Error(ctx, http.StatusBadRequest, httpx.BindMessage(err))
		return
	}

	// Username and email are unique ignoring case. The normalized shadow
	// columns are checked here and enforced by unique indexes on insert.
	var existing models.User

	err := db.DB.Where("username_lower = ?", strings.ToLower(req.Username)).First(&existing).Error

	if err == nil {
		httpx.Error(ctx, http.StatusBadRequest, "Username already exists")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("failed to check existing username", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	err = db.DB.Where("email_lower = ?", strings.ToLower(req.Email)).First(&existing).Error

	if err == nil {
		httpx.Error(ctx, http.StatusBadRequest, "Email already registered")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("failed to check existing email", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		logger.Error("failed to hash password", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		Type:         req.Type,
		PasswordHash: string(passwordHash),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		// A concurrent registration can slip past the checks above; the
		// unique indexes reject it here instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.Error(ctx, http.StatusBadRequest, duplicateUserMessage(req))
			return
		}
		logger.Error("failed to create user", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.Created(ctx, "Register success", toUserResponse(user))
}

// duplicateUserMessage reports which unique column the insert collided on.
func duplicateUserMessage(req RegisterRequest) string {
	var existing models.User

	err := db.DB.Where("username_lower = ?", strings.ToLower(req.Username)).First(&existing).Error

	if err == nil {
		return "Username already exists"
	}

	return "Email already registered"
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		httpx.Error(ctx, http.StatusBadRequest, httpx.BindMessage(err))
		return
	}

	var user models.User

	account := strings.ToLower(req.Account)

	err := db.DB.
		Where("username_lower = ? OR email_lower = ?", account, account).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password, deliberately.
			httpx.Error(ctx, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		logger.Error("failed to fetch user for login", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username)

	if err != nil {
		logger.Error("failed to generate token", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.OK(ctx, "Login success", LoginResponse{
		Token:            token,
		ExpiresInSeconds: int64(auth.TokenTTL().Seconds()),
		User:             toUserResponse(user),
	})
}

func Me(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	httpx.OK(ctx, "success", toUserResponse(user))
}
