package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion source constants. Discounts and coupons share one table; the
// source keeps the two admin surfaces apart and decides lookup priority.
const (
	PromotionSourceDiscount = "discount"
	PromotionSourceCoupon   = "coupon"
)

// Promotion type constants
const (
	PromotionTypePercent = "percent"
	PromotionTypeFlat    = "flat"
)

type Promotion struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Code           string    `gorm:"uniqueIndex;not null" json:"code"`
	Name           string    `json:"name"`
	Source         string    `json:"source"`
	Type           string    `json:"type"`
	Value          float64   `json:"value"`
	MinOrderAmount float64   `json:"min_order_amount"`
	MaxDiscount    float64   `json:"max_discount"`
	ValidFrom      time.Time `json:"valid_from"`
	ValidTo        time.Time `json:"valid_to"`
	// UsageLimit and PerUserLimit of 0 mean uncapped.
	UsageLimit   int            `json:"usage_limit"`
	UsedCount    int            `json:"used_count"`
	PerUserLimit int            `json:"per_user_limit"`
	Active       bool           `json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserPromotionUsage tracks how many times a user has redeemed a promotion.
// Created lazily on first use.
type UserPromotionUsage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex:idx_user_promotion"`
	PromotionID uint      `json:"promotion_id" gorm:"uniqueIndex:idx_user_promotion"`
	UsedCount   int       `json:"used_count"`
	LastUsedAt  time.Time `json:"last_used_at"`
}
