package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/models"
	"github.com/nikhil-742/ShopNest/utils"
)

// ReturnOrderRequest asks to return delivered items. A reason is mandatory;
// without variant IDs every delivered item is returned.
type ReturnOrderRequest struct {
	Reason            string `json:"reason" binding:"required"`
	ProductVariantIDs []uint `json:"product_variant_ids"`
}

// ReturnOrder flags delivered items as returned. No money moves here: a
// refund happens only when an admin verifies the return.
func ReturnOrder(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req ReturnOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	tx := config.DB.Begin()

	var order models.Order
	err := tx.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		Preload("OrderItems").
		First(&order).Error
	if err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	wholeOrder := len(req.ProductVariantIDs) == 0
	requested := make(map[uint]bool, len(req.ProductVariantIDs))
	for _, id := range req.ProductVariantIDs {
		requested[id] = true
	}

	returnedAny := false
	for i := range order.OrderItems {
		item := &order.OrderItems[i]
		if !wholeOrder && !requested[item.ProductVariantID] {
			continue
		}
		if !utils.CanRequestReturn(item.Status) {
			if wholeOrder {
				continue
			}
			tx.Rollback()
			utils.BadRequest(c, "Only delivered items can be returned", nil)
			return
		}

		updates := map[string]interface{}{
			"status":        models.OrderStatusReturned,
			"returned":      true,
			"return_reason": utils.SanitizeString(req.Reason),
		}
		if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to mark item %d returned: %v", item.ID, err)
			utils.InternalServerError(c, utils.ErrInternalServer, nil)
			return
		}
		item.Status = models.OrderStatusReturned
		item.Returned = true
		returnedAny = true
	}

	if !returnedAny {
		tx.Rollback()
		utils.BadRequest(c, "No items were eligible for return", nil)
		return
	}

	newStatus := utils.SummaryStatusFromItems(order.Status, order.OrderItems)
	if err := tx.Model(&order).Update("status", newStatus).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update order %s: %v", order.OrderNumber, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit return request: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.LogInfo("Return requested on order %s by user %d", order.OrderNumber, user.ID)
	utils.Success(c, "Return requested successfully", gin.H{
		"order_number": order.OrderNumber,
		"status":       newStatus,
	})
}
