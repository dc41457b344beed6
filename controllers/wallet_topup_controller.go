package controllers

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/models"
	"github.com/nikhil-742/ShopNest/utils"
)

// InitiateTopupRequest starts a wallet top-up through the payment gateway
type InitiateTopupRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// InitiateWalletTopup validates the amount against the per-transaction
// bounds and the balance cap, then creates a gateway order for the client
// to pay. Funds move only in VerifyWalletTopup.
func InitiateWalletTopup(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req InitiateTopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.Amount < utils.WalletTopupMin || req.Amount > utils.WalletTopupMax {
		utils.BadRequest(c, fmt.Sprintf("Top-up amount must be between %.0f and %.0f", utils.WalletTopupMin, utils.WalletTopupMax), nil)
		return
	}

	wallet, err := utils.GetOrCreateWallet(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to load wallet for user %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}
	if err := utils.CheckCredit(wallet.Balance, req.Amount); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	amountPaise := utils.ToPaise(req.Amount)
	receipt := fmt.Sprintf("topup-%d-%s", user.ID, utils.GenerateOrderNumber())
	gatewayOrder, err := config.Gateway.CreateOrder(amountPaise, receipt)
	if err != nil {
		utils.LogError("Gateway order creation failed for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to initiate top-up", nil)
		return
	}

	gatewayOrderID, _ := gatewayOrder["id"].(string)
	if gatewayOrderID == "" {
		utils.LogError("Gateway order response missing id for user %d", user.ID)
		utils.InternalServerError(c, "Failed to initiate top-up", nil)
		return
	}

	topup := models.WalletTopupOrder{
		UserID:          user.ID,
		RazorpayOrderID: gatewayOrderID,
		Amount:          utils.Round2(req.Amount),
		Status:          "pending",
	}
	if err := config.DB.Create(&topup).Error; err != nil {
		utils.LogError("Failed to record top-up order: %v", err)
		utils.InternalServerError(c, "Failed to initiate top-up", nil)
		return
	}

	utils.LogInfo("Top-up of %.2f initiated by user %d, gateway order %s", req.Amount, user.ID, gatewayOrderID)
	utils.Created(c, "Top-up initiated", gin.H{
		"razorpay_order_id": gatewayOrderID,
		"amount":            topup.Amount,
		"currency":          "INR",
		"key":               os.Getenv("RAZORPAY_KEY"),
	})
}

// VerifyTopupRequest carries the gateway callback fields
type VerifyTopupRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// VerifyWalletTopup checks the callback signature, confirms the payment
// was captured for the expected amount, and credits the wallet. The
// pending-to-completed transition is guarded so a replayed callback cannot
// credit twice.
func VerifyWalletTopup(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req VerifyTopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var topup models.WalletTopupOrder
	err := config.DB.Where("razorpay_order_id = ? AND user_id = ?", req.RazorpayOrderID, user.ID).First(&topup).Error
	if err != nil {
		utils.NotFound(c, "Top-up order not found")
		return
	}
	if topup.Status == "completed" {
		utils.Success(c, "Top-up already processed", gin.H{"status": topup.Status})
		return
	}

	if !utils.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, os.Getenv("RAZORPAY_SECRET")) {
		utils.LogError("Signature mismatch on top-up %s for user %d", req.RazorpayOrderID, user.ID)
		config.DB.Model(&topup).Update("status", "failed")
		utils.BadRequest(c, "Payment verification failed", nil)
		return
	}

	payment, err := config.Gateway.FetchPayment(req.RazorpayPaymentID)
	if err != nil {
		utils.LogError("Payment fetch failed for %s: %v", req.RazorpayPaymentID, err)
		utils.InternalServerError(c, "Failed to verify payment", nil)
		return
	}

	status, _ := payment["status"].(string)
	paidAmount, _ := payment["amount"].(float64)
	paidPaise := int(math.Round(paidAmount))
	expectedPaise := utils.ToPaise(topup.Amount)
	if status != "captured" || paidPaise != expectedPaise {
		utils.LogError("Payment %s not captured for expected amount (status %s, paid %d paise, expected %d)", req.RazorpayPaymentID, status, paidPaise, expectedPaise)
		config.DB.Model(&topup).Update("status", "failed")
		utils.BadRequest(c, "Payment was not captured for the expected amount", nil)
		return
	}

	tx := config.DB.Begin()

	res := tx.Model(&models.WalletTopupOrder{}).
		Where("id = ? AND status = ?", topup.ID, "pending").
		Update("status", "completed")
	if res.Error != nil || res.RowsAffected == 0 {
		tx.Rollback()
		utils.Conflict(c, "Top-up is already being processed", nil)
		return
	}

	wallet, err := utils.GetOrCreateWallet(tx, user.ID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to load wallet for user %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	description := fmt.Sprintf("Wallet top-up via Razorpay (%s)", req.RazorpayPaymentID)
	if err := utils.CreditWallet(tx, wallet, topup.Amount, description, nil); err != nil {
		tx.Rollback()
		config.DB.Model(&topup).Update("status", "failed")
		if errors.Is(err, utils.ErrBalanceCapExceeded) {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		utils.LogError("Failed to credit top-up for user %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit top-up: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.LogInfo("Top-up of %.2f completed for user %d", topup.Amount, user.ID)
	utils.Success(c, "Top-up completed successfully", gin.H{
		"amount":  topup.Amount,
		"balance": wallet.Balance,
	})
}
