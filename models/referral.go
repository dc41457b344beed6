package models

import (
	"time"

	"gorm.io/gorm"
)

// Referral status constants
const (
	ReferralStatusPending   = "pending"
	ReferralStatusCompleted = "completed"
	ReferralStatusExpired   = "expired"
)

// Referral pairs a referrer with a future referred user. Completion spawns
// a reward coupon for the referrer.
type Referral struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ReferrerUserID uint           `json:"referrer_user_id" gorm:"index"`
	ReferredUserID *uint          `json:"referred_user_id,omitempty"`
	Code           string         `json:"code" gorm:"uniqueIndex"`
	Token          string         `json:"token" gorm:"uniqueIndex"`
	Status         string         `json:"status"`
	ExpiresAt      time.Time      `json:"expires_at"`
	RewardCouponID *uint          `json:"reward_coupon_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
