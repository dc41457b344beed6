package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/models"
	"github.com/nikhil-742/ShopNest/utils"
)

// GetWalletBalance returns the caller's wallet, creating it on first use.
func GetWalletBalance(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	wallet, err := utils.GetOrCreateWallet(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to load wallet for user %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.Success(c, "Wallet retrieved successfully", gin.H{
		"balance":     utils.Round2(wallet.Balance),
		"balance_cap": utils.MaxWalletBalance,
	})
}

// GetWalletTransactions returns the caller's ledger, newest first.
func GetWalletTransactions(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	page, limit := utils.GetPaginationParams(c)

	wallet, err := utils.GetOrCreateWallet(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to load wallet for user %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	var total int64
	if err := config.DB.Model(&models.WalletTransaction{}).Where("wallet_id = ?", wallet.ID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count wallet transactions: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	var transactions []models.WalletTransaction
	err = config.DB.Where("wallet_id = ?", wallet.ID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		utils.LogError("Failed to list wallet transactions: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.SuccessWithPagination(c, "Transactions retrieved successfully", gin.H{
		"balance":      utils.Round2(wallet.Balance),
		"transactions": transactions,
	}, total, page, limit)
}

// AdminCreditWalletRequest is a manual adjustment by support staff
type AdminCreditWalletRequest struct {
	UserID      uint    `json:"user_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required"`
}

// AdminCreditWallet credits a user's wallet manually. Subject to the same
// balance cap as every other credit.
func AdminCreditWallet(c *gin.Context) {
	admin := c.MustGet("admin").(models.Admin)

	var req AdminCreditWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, req.UserID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	tx := config.DB.Begin()

	wallet, err := utils.GetOrCreateWallet(tx, user.ID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to load wallet for user %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if err := utils.CreditWallet(tx, wallet, req.Amount, utils.SanitizeString(req.Description), nil); err != nil {
		tx.Rollback()
		if errors.Is(err, utils.ErrBalanceCapExceeded) || errors.Is(err, utils.ErrInvalidAmount) {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		utils.LogError("Failed to credit wallet for user %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit wallet credit: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.LogInfo("Admin %d credited %.2f to user %d wallet", admin.ID, req.Amount, user.ID)
	utils.Success(c, "Wallet credited successfully", gin.H{
		"user_id": user.ID,
		"balance": wallet.Balance,
	})
}

// AdminDebitWalletRequest is a manual deduction by support staff
type AdminDebitWalletRequest struct {
	UserID      uint    `json:"user_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required"`
}

// AdminDebitWallet deducts from a user's wallet manually, for chargeback
// or correction cases. The balance can never go negative.
func AdminDebitWallet(c *gin.Context) {
	admin := c.MustGet("admin").(models.Admin)

	var req AdminDebitWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, req.UserID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	tx := config.DB.Begin()

	wallet, err := utils.GetOrCreateWallet(tx, user.ID)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to load wallet for user %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if err := utils.DebitWallet(tx, wallet, req.Amount, utils.SanitizeString(req.Description), nil); err != nil {
		tx.Rollback()
		if errors.Is(err, utils.ErrInsufficientBalance) || errors.Is(err, utils.ErrInvalidAmount) {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		utils.LogError("Failed to debit wallet for user %d: %v", user.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit wallet debit: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.LogInfo("Admin %d debited %.2f from user %d wallet", admin.ID, req.Amount, user.ID)
	utils.Success(c, "Wallet debited successfully", gin.H{
		"user_id": user.ID,
		"balance": wallet.Balance,
	})
}
