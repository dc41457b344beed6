package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/models"
	"github.com/nikhil-742/ShopNest/utils"
)

// CancelOrderRequest cancels a whole order or, when variant IDs are given,
// just those items.
type CancelOrderRequest struct {
	Reason            string `json:"reason"`
	ProductVariantIDs []uint `json:"product_variant_ids"`
}

// cancellableStatuses are the item states a customer may still back out of.
var cancellableStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusConfirmed:  true,
	models.OrderStatusProcessing: true,
}

// CancelOrder cancels an order or a subset of its items. Stock is restored,
// paid items are refunded to the wallet proportionally, and the order's
// summary status is recomputed from its items.
func CancelOrder(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	tx := config.DB.Begin()

	var order models.Order
	err := tx.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		Preload("OrderItems").
		Preload("Offers").
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

	totalRefund := 0.0
	cancelledAny := false

	for i := range order.OrderItems {
		item := &order.OrderItems[i]
		if !wholeOrder && !requested[item.ProductVariantID] {
			continue
		}
		if !cancellableStatuses[item.Status] {
			if wholeOrder {
				continue
			}
			tx.Rollback()
			utils.BadRequest(c, "One or more items can no longer be cancelled", nil)
			return
		}

		if err := utils.RestoreVariantStock(tx, item.ProductVariantID, item.Quantity); err != nil {
			tx.Rollback()
			utils.LogError("Stock restore failed for variant %d: %v", item.ProductVariantID, err)
			utils.InternalServerError(c, utils.ErrInternalServer, nil)
			return
		}
		var variant models.ProductVariant
		if err := tx.First(&variant, item.ProductVariantID).Error; err == nil {
			if err := utils.RecomputeProductAggregates(tx, variant.ProductID); err != nil {
				tx.Rollback()
				utils.LogError("Aggregate recompute failed: %v", err)
				utils.InternalServerError(c, utils.ErrInternalServer, nil)
				return
			}
		}

		if item.PaymentStatus == models.PaymentStatusPaid {
			amount, err := utils.ProcessItemRefund(tx, &order, item, "system")
			if err != nil {
				tx.Rollback()
				utils.LogError("Refund failed for item %d: %v", item.ID, err)
				utils.InternalServerError(c, "Failed to process refund", nil)
				return
			}
			totalRefund += amount
		}

		updates := map[string]interface{}{
			"status":              models.OrderStatusCancelled,
			"cancelled":           true,
			"cancellation_reason": utils.SanitizeString(req.Reason),
		}
		if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to cancel item %d: %v", item.ID, err)
			utils.InternalServerError(c, utils.ErrInternalServer, nil)
			return
		}
		item.Status = models.OrderStatusCancelled
		item.Cancelled = true
		cancelledAny = true
	}

	if !cancelledAny {
		tx.Rollback()
		utils.BadRequest(c, "No items were eligible for cancellation", nil)
		return
	}

	newStatus := utils.SummaryStatusFromItems(order.Status, order.OrderItems)
	orderUpdates := map[string]interface{}{"status": newStatus}
	if newStatus == models.OrderStatusCancelled {
		orderUpdates["cancellation_reason"] = utils.SanitizeString(req.Reason)
		allRefunded := true
		for _, it := range order.OrderItems {
			if it.PaymentStatus != models.PaymentStatusRefunded && it.PaymentStatus != models.PaymentStatusPending {
				allRefunded = false
			}
		}
		if allRefunded && order.PaymentStatus == models.PaymentStatusPaid {
			orderUpdates["payment_status"] = models.PaymentStatusRefunded
		}
	}
	if err := tx.Model(&order).Updates(orderUpdates).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update order %s: %v", order.OrderNumber, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit cancellation: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.LogInfo("Order %s cancellation by user %d, refunded %.2f", order.OrderNumber, user.ID, totalRefund)
	if totalRefund > 0 {
		go utils.SendRefundNotification(user.Email, order.OrderNumber, totalRefund)
	}

	utils.Success(c, "Order cancelled successfully", gin.H{
		"order_number":  order.OrderNumber,
		"status":        newStatus,
		"refund_amount": utils.Round2(totalRefund),
	})
}
