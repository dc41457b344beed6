package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/models"
	"github.com/nikhil-742/ShopNest/utils"
)

// UpdateOrderItemRequest moves one item forward through fulfillment or
// marks it refunded. At least one field must be set.
type UpdateOrderItemRequest struct {
	Status        string `json:"status" binding:"omitempty,oneof=confirmed processing shipped delivered"`
	PaymentStatus string `json:"payment_status" binding:"omitempty,oneof=refunded"`
}

// fulfillmentRank orders the forward-only fulfillment pipeline.
var fulfillmentRank = map[string]int{
	models.OrderStatusPending:    0,
	models.OrderStatusConfirmed:  1,
	models.OrderStatusProcessing: 2,
	models.OrderStatusShipped:    3,
	models.OrderStatusDelivered:  4,
}

// AdminUpdateOrderItem advances an item's fulfillment status or refunds it.
// Fulfillment transitions only move forward; cancelled and returned items
// are out of reach. COD items are marked paid on delivery. Setting payment
// status to refunded runs the proportional allocator, which is idempotent.
// The order's summary status is recomputed afterwards.
func AdminUpdateOrderItem(c *gin.Context) {
	var req UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if req.Status == "" && req.PaymentStatus == "" {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	tx := config.DB.Begin()

	var order models.Order
	err := tx.Where("id = ?", c.Param("id")).
		Preload("OrderItems").
		Preload("Offers").
		First(&order).Error
	if err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	var item *models.OrderItem
	for i := range order.OrderItems {
		if c.Param("item_id") == strconv.FormatUint(uint64(order.OrderItems[i].ID), 10) {
			item = &order.OrderItems[i]
			break
		}
	}
	if item == nil {
		tx.Rollback()
		utils.NotFound(c, "Order item not found")
		return
	}

	refundAmount := 0.0

	if req.Status != "" {
		currentRank, ok := fulfillmentRank[item.Status]
		if !ok {
			tx.Rollback()
			utils.BadRequest(c, "Item is not in the fulfillment pipeline", nil)
			return
		}
		if fulfillmentRank[req.Status] <= currentRank {
			tx.Rollback()
			utils.BadRequest(c, "Item status can only move forward", nil)
			return
		}

		updates := map[string]interface{}{"status": req.Status}
		if req.Status == models.OrderStatusDelivered &&
			order.PaymentMethod == models.PaymentMethodCOD &&
			item.PaymentStatus == models.PaymentStatusPending {
			updates["payment_status"] = models.PaymentStatusPaid
		}
		if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to update item %d: %v", item.ID, err)
			utils.InternalServerError(c, utils.ErrInternalServer, nil)
			return
		}
		item.Status = req.Status
		if ps, ok := updates["payment_status"]; ok {
			item.PaymentStatus = ps.(string)
		}
	}

	if req.PaymentStatus == models.PaymentStatusRefunded {
		amount, err := utils.ProcessItemRefund(tx, &order, item, "admin")
		if err != nil {
			tx.Rollback()
			utils.LogError("Refund failed for item %d: %v", item.ID, err)
			utils.InternalServerError(c, "Failed to process refund", nil)
			return
		}
		refundAmount = amount
	}

	orderUpdates := map[string]interface{}{
		"status": utils.SummaryStatusFromItems(order.Status, order.OrderItems),
	}
	// Cash collected on delivery: once every live item is paid, the order is.
	if order.PaymentMethod == models.PaymentMethodCOD && order.PaymentStatus == models.PaymentStatusPending {
		allPaid := true
		for _, it := range order.OrderItems {
			if it.Status == models.OrderStatusCancelled {
				continue
			}
			if it.PaymentStatus != models.PaymentStatusPaid {
				allPaid = false
			}
		}
		if allPaid {
			orderUpdates["payment_status"] = models.PaymentStatusPaid
		}
	}
	if err := tx.Model(&order).Updates(orderUpdates).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update order %s: %v", order.OrderNumber, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit item update: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	data := gin.H{
		"order_number":   order.OrderNumber,
		"item_id":        item.ID,
		"status":         item.Status,
		"payment_status": item.PaymentStatus,
	}
	if refundAmount > 0 {
		data["refund_amount"] = refundAmount
	}
	utils.Success(c, "Order item updated", data)
}
