package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/models"
	"github.com/nikhil-742/ShopNest/utils"
	"gorm.io/gorm"
)

// AdminListOrders returns all orders, filterable by status, newest first.
func AdminListOrders(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	var orders []models.Order
	err := query.Preload("OrderItems").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		utils.LogError("Failed to list orders: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", gin.H{"orders": orders}, total, page, limit)
}

// loadOrderWithReturns fetches an order and confirms it has items awaiting
// return verification.
func loadOrderWithReturns(tx *gorm.DB, orderID string) (*models.Order, error) {
	var order models.Order
	err := tx.Where("id = ?", orderID).
		Preload("OrderItems").
		Preload("Offers").
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func returnedItems(order *models.Order) []*models.OrderItem {
	var items []*models.OrderItem
	for i := range order.OrderItems {
		if order.OrderItems[i].Status == models.OrderStatusReturned {
			items = append(items, &order.OrderItems[i])
		}
	}
	return items
}

// verifyReturn is the shared path for the two verification endpoints. Stock
// comes back either way; withRefund decides whether wallets are credited.
func verifyReturn(c *gin.Context, withRefund bool) {
	admin := c.MustGet("admin").(models.Admin)

	tx := config.DB.Begin()

	order, err := loadOrderWithReturns(tx, c.Param("id"))
	if err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	pending := returnedItems(order)
	if len(pending) == 0 {
		tx.Rollback()
		utils.BadRequest(c, "Order has no items awaiting return verification", nil)
		return
	}

	totalRefund := 0.0
	for _, item := range pending {
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

		if withRefund && item.PaymentStatus == models.PaymentStatusPaid {
			amount, err := utils.ProcessItemRefund(tx, order, item, "admin")
			if err != nil {
				tx.Rollback()
				utils.LogError("Refund failed for item %d: %v", item.ID, err)
				utils.InternalServerError(c, "Failed to process refund", nil)
				return
			}
			totalRefund += amount
		}

		if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).
			Update("status", models.OrderStatusReturnVerified).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to verify item %d: %v", item.ID, err)
			utils.InternalServerError(c, utils.ErrInternalServer, nil)
			return
		}
		item.Status = models.OrderStatusReturnVerified
	}

	now := time.Now()
	newStatus := utils.SummaryStatusFromItems(order.Status, order.OrderItems)
	allVerified := true
	for _, it := range order.OrderItems {
		if it.Status != models.OrderStatusCancelled && it.Status != models.OrderStatusReturnVerified {
			allVerified = false
		}
	}
	if allVerified {
		newStatus = models.OrderStatusReturnVerified
	}
	orderUpdates := map[string]interface{}{
		"status":             newStatus,
		"return_verified_by": admin.ID,
		"return_verified_at": now,
	}
	if withRefund && (newStatus == models.OrderStatusReturned || newStatus == models.OrderStatusReturnVerified) {
		allSettled := true
		for _, it := range order.OrderItems {
			if it.Status != models.OrderStatusCancelled && it.PaymentStatus == models.PaymentStatusPaid {
				allSettled = false
			}
		}
		if allSettled {
			orderUpdates["payment_status"] = models.PaymentStatusRefunded
		}
	}
	if err := tx.Model(order).Updates(orderUpdates).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update order %s: %v", order.OrderNumber, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit return verification: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.LogInfo("Return on order %s verified by admin %d, refunded %.2f", order.OrderNumber, admin.ID, totalRefund)
	if totalRefund > 0 {
		var user models.User
		if err := config.DB.First(&user, order.UserID).Error; err == nil {
			go utils.SendRefundNotification(user.Email, order.OrderNumber, totalRefund)
		}
	}

	utils.Success(c, "Return verified successfully", gin.H{
		"order_number":  order.OrderNumber,
		"status":        newStatus,
		"refund_amount": utils.Round2(totalRefund),
	})
}

// AdminVerifyReturn accepts a return and refunds the returned items to the
// customer's wallet.
func AdminVerifyReturn(c *gin.Context) {
	verifyReturn(c, true)
}

// AdminVerifyReturnWithoutRefund accepts a return, restores stock, but
// moves no money. Payment statuses are left as they are.
func AdminVerifyReturnWithoutRefund(c *gin.Context) {
	verifyReturn(c, false)
}

// RejectReturnRequest carries the mandatory rejection reason
type RejectReturnRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AdminRejectReturn declines a return request. Rejection is terminal: the
// rejected items cannot be resubmitted, and the reviewer and reason are
// recorded. No stock or money moves.
func AdminRejectReturn(c *gin.Context) {
	admin := c.MustGet("admin").(models.Admin)

	var req RejectReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	tx := config.DB.Begin()

	order, err := loadOrderWithReturns(tx, c.Param("id"))
	if err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	pending := returnedItems(order)
	if len(pending) == 0 {
		tx.Rollback()
		utils.BadRequest(c, "Order has no items awaiting return verification", nil)
		return
	}

	for _, item := range pending {
		if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).
			Update("status", models.OrderStatusRejected).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to reject return on item %d: %v", item.ID, err)
			utils.InternalServerError(c, utils.ErrInternalServer, nil)
			return
		}
		item.Status = models.OrderStatusRejected
	}

	now := time.Now()
	if err := tx.Model(order).Updates(map[string]interface{}{
		"status":               models.OrderStatusRejected,
		"return_reject_reason": utils.SanitizeString(req.Reason),
		"return_verified_by":   admin.ID,
		"return_verified_at":   now,
	}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update order %s: %v", order.OrderNumber, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit return rejection: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.LogInfo("Return on order %s rejected by admin %d", order.OrderNumber, admin.ID)
	utils.Success(c, "Return rejected", gin.H{
		"order_number": order.OrderNumber,
		"status":       models.OrderStatusRejected,
	})
}
