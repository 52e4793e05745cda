package handlers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stelae-dev/stelae/db"
	"github.com/stelae-dev/stelae/internal/httpx"
	"github.com/stelae-dev/stelae/internal/ids"
	"github.com/stelae-dev/stelae/internal/listing"
	"github.com/stelae-dev/stelae/internal/logger"
	"github.com/stelae-dev/stelae/internal/models"
	"github.com/stelae-dev/stelae/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateDesignRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Thumbnail   string                 `json:"thumbnail" binding:"required"`
	DesignState map[string]interface{} `json:"designState" binding:"required"`
}

type DesignResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Thumbnail   string      `json:"thumbnail"`
	DesignState interface{} `json:"designState"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type DesignListItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Thumbnail string    `json:"thumbnail"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toDesignResponse(design models.Design) DesignResponse {
	return DesignResponse{
		ID:          ids.FormatDesignID(design.ID),
		Name:        design.Name,
		Thumbnail:   design.Thumbnail,
		DesignState: fromJSONColumn(design.DesignState),
		CreatedAt:   design.CreatedAt,
		UpdatedAt:   design.UpdatedAt,
	}
}

func CreateDesign(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req CreateDesignRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		httpx.Error(ctx, http.StatusBadRequest, httpx.BindMessage(err))
		return
	}

	state, err := toJSONColumn(req.DesignState)

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, "Invalid designState")
		return
	}

	design := models.Design{
		UserID:      userID,
		Name:        req.Name,
		Thumbnail:   req.Thumbnail,
		DesignState: state,
	}

	if err := db.DB.Create(&design).Error; err != nil {
		logger.Error("failed to create design", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Failed to create design")
		return
	}

	httpx.Created(ctx, "Created", toDesignResponse(design))
}

func ListDesigns(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var designs []models.Design

	if err := db.DB.Where("user_id = ?", userID).Find(&designs).Error; err != nil {
		logger.Error("failed to list designs", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Failed to retrieve designs")
		return
	}

	keyword := ctx.Query("keyword")

	filtered := designs[:0:0]
	for _, design := range designs {
		if listing.MatchesKeyword(design.Name, keyword) {
			filtered = append(filtered, design)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].UpdatedAt.After(filtered[j].UpdatedAt)
	})

	page := listing.Paginate(filtered, queryInt(ctx, "page"), queryInt(ctx, "pageSize"))

	items := make([]DesignListItem, 0, len(page.Items))
	for _, design := range page.Items {
		items = append(items, DesignListItem{
			ID:        ids.FormatDesignID(design.ID),
			Name:      design.Name,
			Thumbnail: design.Thumbnail,
			UpdatedAt: design.UpdatedAt,
		})
	}

	httpx.OK(ctx, "success", listing.Page[DesignListItem]{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
	})
}

func GetDesign(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	designID, err := ids.ParseDesignID(ctx.Param("id"))

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	design, ok := findDesign(ctx, designID, userID)

	if !ok {
		return
	}

	httpx.OK(ctx, "success", toDesignResponse(design))
}

func UpdateDesign(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	designID, err := ids.ParseDesignID(ctx.Param("id"))

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var req CreateDesignRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		httpx.Error(ctx, http.StatusBadRequest, httpx.BindMessage(err))
		return
	}

	design, ok := findDesign(ctx, designID, userID)

	if !ok {
		return
	}

	state, err := toJSONColumn(req.DesignState)

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, "Invalid designState")
		return
	}

	// Updates replace the design wholesale; there is no partial form.
	design.Name = req.Name
	design.Thumbnail = req.Thumbnail
	design.DesignState = state

	if err := db.DB.Save(&design).Error; err != nil {
		logger.Error("failed to update design", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Failed to update design")
		return
	}

	httpx.OK(ctx, "success", toDesignResponse(design))
}

func DeleteDesign(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	designID, err := ids.ParseDesignID(ctx.Param("id"))

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	design, ok := findDesign(ctx, designID, userID)

	if !ok {
		return
	}

	if err := db.DB.Delete(&design).Error; err != nil {
		logger.Error("failed to delete design", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Failed to delete design")
		return
	}

	httpx.Message(ctx, "Deleted")
}

// findDesign loads a design scoped to its owner. A design owned by
// someone else is indistinguishable from a missing one.
func findDesign(ctx *gin.Context, designID, userID uint) (models.Design, bool) {
	var design models.Design

	if err := db.DB.Where("id = ? AND user_id = ?", designID, userID).First(&design).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(ctx, http.StatusNotFound, "Design not found")
		} else {
			logger.Error("failed to retrieve design", zap.Error(err))
			httpx.Error(ctx, http.StatusInternalServerError, "Failed to retrieve design")
		}
		return models.Design{}, false
	}

	return design, true
}
