package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stelae-dev/stelae/db"
	"github.com/stelae-dev/stelae/internal/httpx"
	"github.com/stelae-dev/stelae/internal/ids"
	"github.com/stelae-dev/stelae/internal/listing"
	"github.com/stelae-dev/stelae/internal/logger"
	"github.com/stelae-dev/stelae/internal/models"
	"github.com/stelae-dev/stelae/internal/ordernum"
	"github.com/stelae-dev/stelae/internal/utils"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultOrderStatus = "Pending"

// summaryFields is the allow-list projected into order list views; the
// full form document is only returned on the detail endpoint.
var summaryFields = []string{"contractNo", "cemetery", "familyName"}

var orderNumbers = ordernum.NewGenerator()

type CreateOrderRequest struct {
	DesignID       string                 `json:"designId"`
	DesignSnapshot map[string]interface{} `json:"designSnapshot" binding:"required"`
	Thumbnail      string                 `json:"thumbnail" binding:"required"`
	Status         string                 `json:"status"`
	OrderFormData  map[string]interface{} `json:"orderFormData" binding:"required"`
}

type UpdateOrderRequest struct {
	Status        string                 `json:"status"`
	OrderFormData map[string]interface{} `json:"orderFormData"`
}

type OrderResponse struct {
	ID             string      `json:"id"`
	OrderNumber    string      `json:"orderNumber"`
	Status         string      `json:"status"`
	DesignID       *string     `json:"designId"`
	DesignSnapshot interface{} `json:"designSnapshot"`
	Thumbnail      string      `json:"thumbnail"`
	OrderFormData  interface{} `json:"orderFormData"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

type OrderListItem struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"orderNumber"`
	Status        string      `json:"status"`
	Thumbnail     string      `json:"thumbnail"`
	OrderFormData interface{} `json:"orderFormData"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func toOrderResponse(order models.Order) OrderResponse {
	var designID *string

	if order.DesignID != nil {
		formatted := ids.FormatDesignID(*order.DesignID)
		designID = &formatted
	}

	return OrderResponse{
		ID:             ids.FormatOrderID(order.ID),
		OrderNumber:    order.OrderNumber,
		Status:         order.Status,
		DesignID:       designID,
		DesignSnapshot: fromJSONColumn(order.DesignSnapshot),
		Thumbnail:      order.Thumbnail,
		OrderFormData:  fromJSONColumn(order.OrderFormData),
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

func toOrderListItem(order models.Order) OrderListItem {
	return OrderListItem{
		ID:            ids.FormatOrderID(order.ID),
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		Thumbnail:     order.Thumbnail,
		OrderFormData: orderSummary(order.OrderFormData),
		CreatedAt:     order.CreatedAt,
	}
}

// orderSummary projects the allow-listed fields out of the form data,
// omitting any that are absent.
func orderSummary(formData datatypes.JSON) map[string]interface{} {
	summary := make(map[string]interface{})

	if len(formData) == 0 {
		return summary
	}

	var form map[string]interface{}

	if err := json.Unmarshal(formData, &form); err != nil {
		return summary
	}

	for _, field := range summaryFields {
		if value, ok := form[field]; ok {
			summary[field] = value
		}
	}

	return summary
}

func CreateOrder(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req CreateOrderRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		httpx.Error(ctx, http.StatusBadRequest, httpx.BindMessage(err))
		return
	}

	// The design reference is format-checked only. Orders keep their own
	// snapshot, so a reference to a deleted or foreign design is allowed.
	var designID *uint

	if strings.TrimSpace(req.DesignID) != "" {
		parsed, err := ids.ParseDesignID(req.DesignID)

		if err != nil {
			httpx.Error(ctx, http.StatusBadRequest, err.Error())
			return
		}

		designID = &parsed
	}

	snapshot, err := toJSONColumn(req.DesignSnapshot)

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, "Invalid designSnapshot")
		return
	}

	formData, err := toJSONColumn(req.OrderFormData)

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, "Invalid orderFormData")
		return
	}

	status := strings.TrimSpace(req.Status)

	if status == "" {
		status = defaultOrderStatus
	}

	number, err := orderNumbers.Next(orderNumberExists)

	if err != nil {
		logger.Error("failed to generate order number", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	order := models.Order{
		UserID:         userID,
		DesignID:       designID,
		DesignSnapshot: snapshot,
		Thumbnail:      req.Thumbnail,
		Status:         status,
		OrderFormData:  formData,
		OrderNumber:    number,
	}

	if err := db.DB.Create(&order).Error; err != nil {
		logger.Error("failed to create order", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	httpx.Created(ctx, "Order created", toOrderResponse(order))
}

func ListOrders(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var orders []models.Order

	if err := db.DB.Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		logger.Error("failed to list orders", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	keyword := ctx.Query("keyword")
	status := strings.TrimSpace(ctx.Query("status"))

	filtered := orders[:0:0]
	for _, order := range orders {
		if !listing.MatchesKeyword(order.OrderNumber, keyword) {
			continue
		}
		if status != "" && !strings.EqualFold(order.Status, status) {
			continue
		}
		filtered = append(filtered, order)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	page := listing.Paginate(filtered, queryInt(ctx, "page"), queryInt(ctx, "pageSize"))

	items := make([]OrderListItem, 0, len(page.Items))
	for _, order := range page.Items {
		items = append(items, toOrderListItem(order))
	}

	httpx.OK(ctx, "success", listing.Page[OrderListItem]{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
	})
}

func GetOrder(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	orderID, err := ids.ParseOrderID(ctx.Param("id"))

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	order, ok := findOrder(ctx, orderID, userID)

	if !ok {
		return
	}

	httpx.OK(ctx, "success", toOrderResponse(order))
}

// UpdateOrder applies a partial update: status only when non-blank,
// form data only when present in the request body.
func UpdateOrder(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	orderID, err := ids.ParseOrderID(ctx.Param("id"))

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateOrderRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		httpx.Error(ctx, http.StatusBadRequest, httpx.BindMessage(err))
		return
	}

	order, ok := findOrder(ctx, orderID, userID)

	if !ok {
		return
	}

	if strings.TrimSpace(req.Status) != "" {
		order.Status = req.Status
	}

	if req.OrderFormData != nil {
		formData, err := toJSONColumn(req.OrderFormData)

		if err != nil {
			httpx.Error(ctx, http.StatusBadRequest, "Invalid orderFormData")
			return
		}

		order.OrderFormData = formData
	}

	if err := db.DB.Save(&order).Error; err != nil {
		logger.Error("failed to update order", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Failed to update order")
		return
	}

	httpx.OK(ctx, "success", toOrderResponse(order))
}

func DeleteOrder(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		httpx.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	orderID, err := ids.ParseOrderID(ctx.Param("id"))

	if err != nil {
		httpx.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	order, ok := findOrder(ctx, orderID, userID)

	if !ok {
		return
	}

	if err := db.DB.Delete(&order).Error; err != nil {
		logger.Error("failed to delete order", zap.Error(err))
		httpx.Error(ctx, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	httpx.Message(ctx, "Deleted")
}

func findOrder(ctx *gin.Context, orderID, userID uint) (models.Order, bool) {
	var order models.Order

	if err := db.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(ctx, http.StatusNotFound, "Order not found")
		} else {
			logger.Error("failed to retrieve order", zap.Error(err))
			httpx.Error(ctx, http.StatusInternalServerError, "Failed to retrieve order")
		}
		return models.Order{}, false
	}

	return order, true
}

// orderNumberExists is the uniqueness probe handed to the generator. The
// unique index on order_number remains the actual guarantee under
// concurrent creation.
func orderNumberExists(number string) (bool, error) {
	var count int64

	if err := db.DB.Model(&models.Order{}).Where("order_number = ?", number).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
