package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stelae-dev/stelae/db"
	"github.com/stelae-dev/stelae/internal/httpx"
	"github.com/stelae-dev/stelae/internal/ids"
	"github.com/stelae-dev/stelae/internal/logger"
	"github.com/stelae-dev/stelae/internal/models"
	"github.com/stelae-dev/stelae/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateLibraryItemRequest struct {
	Type      string                 `json:"type" binding:"required,oneof=text art"`
	SlotIndex int                    `json:"slotIndex" binding:"gte=0,lte=7"`
	Thumbnail string                 `json:"thumbnail" binding:"required"`
	Data      map[string]interface{} `json:"data" binding:"required"`
}

type UpdateLibraryItemRequest struct {
	SlotIndex int `json:"slotIndex" binding:"gte=0,lte=7"`
}

// LibraryItemResponse ids are the bare numeric key, unlike designs and
// orders. Kept for compatibility with existing clients.
type LibraryItemResponse struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	SlotIndex int         `json:"slotIndex"`
	Thumbnail string      `json:"thumbnail"`
	Data      interface{} `json:"data"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func toLibraryItemResponse(item models.LibraryItem) LibraryItemResponse {
	return LibraryItemResponse{
		ID:        ids.FormatLibraryItemID(item.ID),
		Type:      item.Type,
		SlotIndex: item.SlotIndex,
		Thumbnail: item.Thumbnail,
		Data:      fromJSONColumn(item.Data),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func CreateLibraryItem(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req CreateLibraryItemRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		httpx.Error(ctx, http.StatusBadRequest, httpx.BindMessage(err))
		return
	}

	data, err := toJSONColumn(req.Data)

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, "Invalid data")
		return
	}

	item := models.LibraryItem{
		UserID:    userID,
		Type:      req.Type,
		SlotIndex: req.SlotIndex,
		Thumbnail: req.Thumbnail,
		Data:      data,
	}

	if err := db.DB.Create(&item).Error; err != nil {
		logger.Error("failed to create library item", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Failed to save library item")
		return
	}

	httpx.Created(ctx, "Saved", toLibraryItemResponse(item))
}

// ListLibraryItems returns the full collection sorted by slot; the
// library is bounded at eight slots, so there is no pagination.
func ListLibraryItems(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var items []models.LibraryItem

	if err := db.DB.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		logger.Error("failed to list library items", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Failed to retrieve library items")
		return
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].SlotIndex < items[j].SlotIndex
	})

	response := make([]LibraryItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toLibraryItemResponse(item))
	}

	httpx.OK(ctx, "success", response)
}

func UpdateLibraryItem(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	itemID, err := parseLibraryItemID(ctx.Param("id"))

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, "Invalid library item id")
		return
	}

	var req UpdateLibraryItemRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		httpx.Error(ctx, http.StatusBadRequest, httpx.BindMessage(err))
		return
	}

	item, ok := findLibraryItem(ctx, itemID, userID)

	if !ok {
		return
	}

	// Only the slot assignment is mutable; type, thumbnail and data are
	// fixed at creation.
	item.SlotIndex = req.SlotIndex

	if err := db.DB.Save(&item).Error; err != nil {
		logger.Error("failed to update library item", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Failed to update library item")
		return
	}

	httpx.OK(ctx, "success", toLibraryItemResponse(item))
}

func DeleteLibraryItem(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	itemID, err := parseLibraryItemID(ctx.Param("id"))

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, "Invalid library item id")
		return
	}

	item, ok := findLibraryItem(ctx, itemID, userID)

	if !ok {
		return
	}

	if err := db.DB.Delete(&item).Error; err != nil {
		logger.Error("failed to delete library item", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Failed to delete library item")
		return
	}

	httpx.Message(ctx, "Deleted")
}

func parseLibraryItemID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)

	if err != nil {
		return 0, err
	}

	return uint(id), nil
}

func findLibraryItem(ctx *gin.Context, itemID, userID uint) (models.LibraryItem, bool) {
	var item models.LibraryItem

	if err := db.DB.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(ctx, http.StatusNotFound, "Library item not found")
		} else {
			logger.Error("failed to retrieve library item", zap.Error(err))
			httpx.Error(ctx, http.StatusInternalServerError, "Failed to retrieve library item")
		}
		return models.LibraryItem{}, false
	}

	return item, true
}
