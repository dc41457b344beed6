package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/nikhil-742/ShopNest/models"
	"gorm.io/gorm"
)

// Promotion evaluation failures. Controllers map these to the response
// taxonomy (404 for not-found, 400 for the rest).
var (
	ErrPromotionNotFound    = errors.New("no active promotion matches this code")
	ErrMinimumAmountNotMet  = errors.New("order amount is below the promotion minimum")
	ErrGlobalUsageExceeded  = errors.New("promotion usage limit reached")
	ErrPerUserUsageExceeded = errors.New("you have already used this promotion the maximum number of times")
)

// CalculatePromotionDiscount computes the discount a promotion yields for a
// given order amount: percentage or flat value, clipped to the promotion's
// max discount and then to the order amount, rounded to two decimals.
func CalculatePromotionDiscount(p models.Promotion, orderAmount float64) float64 {
	var amount float64
	if p.Type == models.PromotionTypePercent {
		amount = orderAmount * p.Value / 100
	} else {
		amount = p.Value
	}
	if p.MaxDiscount > 0 && amount > p.MaxDiscount {
		amount = p.MaxDiscount
	}
	if amount > orderAmount {
		amount = orderAmount
	}
	return Round2(amount)
}

// ValidatePromotion checks eligibility without touching counters. userUsed
// is the caller's current usage count for this promotion.
func ValidatePromotion(p models.Promotion, orderAmount float64, userUsed int, now time.Time) error {
	if !p.Active || now.Before(p.ValidFrom) || now.After(p.ValidTo) {
		return ErrPromotionNotFound
	}
	if orderAmount < p.MinOrderAmount {
		return ErrMinimumAmountNotMet
	}
	if p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit {
		return ErrGlobalUsageExceeded
	}
	if p.PerUserLimit > 0 && userUsed >= p.PerUserLimit {
		return ErrPerUserUsageExceeded
	}
	return nil
}

// FindPromotionByCode looks a promotion up by code, case-insensitively.
// When a discount and a coupon share a code, the discount wins.
func FindPromotionByCode(tx *gorm.DB, code string) (*models.Promotion, error) {
	var promo models.Promotion
	err := tx.Where("UPPER(code) = ?", strings.ToUpper(strings.TrimSpace(code))).
		Order("CASE WHEN source = 'discount' THEN 0 ELSE 1 END").
		First(&promo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &promo, nil
}

// EvaluatePromotion resolves a code and computes the discount amount for the
// user and order amount. It performs no writes; ConsumePromotionUsage burns
// the usage inside the order transaction.
func EvaluatePromotion(tx *gorm.DB, code string, orderAmount float64, userID uint) (*models.Promotion, float64, error) {
	promo, err := FindPromotionByCode(tx, code)
	if err != nil {
		return nil, 0, err
	}

	var usage models.UserPromotionUsage
	userUsed := 0
	if err := tx.Where("user_id = ? AND promotion_id = ?", userID, promo.ID).First(&usage).Error; err == nil {
		userUsed = usage.UsedCount
	}

	if err := ValidatePromotion(*promo, orderAmount, userUsed, time.Now()); err != nil {
		return nil, 0, err
	}

	return promo, CalculatePromotionDiscount(*promo, orderAmount), nil
}

// ConsumePromotionUsage increments the global and per-user usage counters.
// Both increments are guarded in the UPDATE's WHERE clause so that two
// concurrent orders cannot both pass a limit check and over-admit; callers
// run this inside the same transaction as the order write so both counters
// move together or not at all.
func ConsumePromotionUsage(tx *gorm.DB, promo *models.Promotion, userID uint) error {
	res := tx.Model(&models.Promotion{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", promo.ID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGlobalUsageExceeded
	}

	var usage models.UserPromotionUsage
	if err := tx.Where("user_id = ? AND promotion_id = ?", userID, promo.ID).
		FirstOrCreate(&usage, models.UserPromotionUsage{UserID: userID, PromotionID: promo.ID}).Error; err != nil {
		return err
	}

	res = tx.Model(&models.UserPromotionUsage{}).
		Where("id = ? AND (? = 0 OR used_count < ?)", usage.ID, promo.PerUserLimit, promo.PerUserLimit).
		Updates(map[string]interface{}{
			"used_count":   gorm.Expr("used_count + 1"),
			"last_used_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPerUserUsageExceeded
	}

	return nil
}
