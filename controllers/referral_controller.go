package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/models"
	"github.com/nikhil-742/ShopNest/utils"

	"github.com/gin-gonic/gin"
)

// GetReferral returns the caller's shareable referral code and token,
// creating them on first request.
func GetReferral(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var referral models.Referral
	err := config.DB.Where("referrer_user_id = ? AND referred_user_id IS NULL AND status = ?",
		user.ID, models.ReferralStatusPending).First(&referral).Error
	if err != nil {
		referral = models.Referral{
			ReferrerUserID: user.ID,
			Code:           strings.ToUpper(uuid.New().String()[:8]),
			Token:          uuid.New().String(),
			Status:         models.ReferralStatusPending,
			ExpiresAt:      time.Now().AddDate(0, 0, utils.ReferralExpiryDays),
		}
		if err := config.DB.Create(&referral).Error; err != nil {
			utils.LogError("Failed to create referral for user %d: %v", user.ID, err)
			utils.InternalServerError(c, utils.ErrInternalServer, nil)
			return
		}
	}

	utils.Success(c, "Referral retrieved successfully", gin.H{
		"code":       referral.Code,
		"token":      referral.Token,
		"expires_at": referral.ExpiresAt,
		"status":     referral.Status,
	})
}

// CompleteReferralRequest redeems a referral token
type CompleteReferralRequest struct {
	Token string `json:"token" binding:"required"`
}

// CompleteReferral binds the caller to a referral by its token. The reward
// is not minted here: it is spawned when the referred user's first order
// lands. A caller who already placed orders completes the referral
// immediately.
func CompleteReferral(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req CompleteReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var referral models.Referral
	err := config.DB.Where("token = ? AND status = ? AND expires_at > ?",
		req.Token, models.ReferralStatusPending, time.Now()).First(&referral).Error
	if err != nil {
		utils.NotFound(c, "Referral token is invalid or expired")
		return
	}

	if referral.ReferrerUserID == user.ID {
		utils.BadRequest(c, "You cannot redeem your own referral", nil)
		return
	}
	if referral.ReferredUserID != nil && *referral.ReferredUserID != user.ID {
		utils.Conflict(c, "This referral has already been claimed", nil)
		return
	}

	// Guarded claim: only one user can take an unclaimed referral.
	res := config.DB.Model(&models.Referral{}).
		Where("id = ? AND (referred_user_id IS NULL OR referred_user_id = ?)", referral.ID, user.ID).
		Update("referred_user_id", user.ID)
	if res.Error != nil || res.RowsAffected == 0 {
		utils.Conflict(c, "This referral has already been claimed", nil)
		return
	}

	var orderCount int64
	config.DB.Model(&models.Order{}).
		Where("user_id = ? AND status <> ?", user.ID, models.OrderStatusCancelled).
		Count(&orderCount)
	if orderCount >= 1 {
		go completeReferralForFirstOrder(user.ID)
	}

	utils.LogInfo("Referral %d claimed by user %d", referral.ID, user.ID)
	utils.Success(c, "Referral claimed successfully", gin.H{
		"code":   referral.Code,
		"status": models.ReferralStatusPending,
	})
}

// completeReferralForFirstOrder completes a pending referral once the
// referred user places their first order, spawning a reward coupon for the
// referrer. Fired on a goroutine after order placement; failures are
// logged, never surfaced to the order flow.
func completeReferralForFirstOrder(userID uint) {
	var referral models.Referral
	err := config.DB.Where("referred_user_id = ? AND status = ?", userID, models.ReferralStatusPending).
		First(&referral).Error
	if err != nil {
		return
	}

	if time.Now().After(referral.ExpiresAt) {
		config.DB.Model(&referral).Update("status", models.ReferralStatusExpired)
		return
	}

	var orderCount int64
	if err := config.DB.Model(&models.Order{}).
		Where("user_id = ? AND status <> ?", userID, models.OrderStatusCancelled).
		Count(&orderCount).Error; err != nil || orderCount == 0 {
		return
	}

	tx := config.DB.Begin()

	// Guarded transition so two near-simultaneous first orders cannot mint
	// two reward coupons.
	res := tx.Model(&models.Referral{}).
		Where("id = ? AND status = ?", referral.ID, models.ReferralStatusPending).
		Update("status", models.ReferralStatusCompleted)
	if res.Error != nil || res.RowsAffected == 0 {
		tx.Rollback()
		return
	}

	coupon := models.Promotion{
		Code:         fmt.Sprintf("REF-%s", strings.ToUpper(uuid.New().String()[:8])),
		Name:         "Referral reward",
		Source:       models.PromotionSourceCoupon,
		Type:         models.PromotionTypePercent,
		Value:        utils.ReferralRewardPercent,
		ValidFrom:    time.Now(),
		ValidTo:      time.Now().AddDate(0, 0, utils.ReferralExpiryDays),
		UsageLimit:   1,
		PerUserLimit: 1,
		Active:       true,
	}
	if err := tx.Create(&coupon).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create referral reward coupon: %v", err)
		return
	}

	if err := tx.Model(&models.Referral{}).Where("id = ?", referral.ID).
		Update("reward_coupon_id", coupon.ID).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to link reward coupon to referral %d: %v", referral.ID, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit referral completion: %v", err)
		return
	}

	utils.LogInfo("Referral %d completed, reward coupon %s for user %d", referral.ID, coupon.Code, referral.ReferrerUserID)

	var referrer models.User
	if err := config.DB.First(&referrer, referral.ReferrerUserID).Error; err == nil {
		body := fmt.Sprintf(`
			<h2>Your referral came through!</h2>
			<p>Someone you referred just placed their first order.</p>
			<p>Here's a <strong>%.0f%%</strong> coupon as a thank you: <strong>%s</strong></p>
		`, utils.ReferralRewardPercent, coupon.Code)
		if err := utils.SendEmail(referrer.Email, "You earned a referral reward", body); err != nil {
			utils.LogError("Failed to send referral reward email: %v", err)
		}
	}
}
