package models

import (
	"time"

	"gorm.io/gorm"
)

// Offer scope constants
const (
	OfferScopeProduct  = "product"
	OfferScopeCategory = "category"
	OfferScopeReferral = "referral"
)

// Offer is a promotional percentage reduction scoped to a product, a
// category, or the referral programme. Matching happens at catalog-query
// time; orders snapshot the computed amounts into OrderOffer rows.
type Offer struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `json:"name"`
	Scope         string         `json:"scope" gorm:"not null;index"`
	ProductID     *uint          `json:"product_id,omitempty" gorm:"index"`
	CategoryID    *uint          `json:"category_id,omitempty" gorm:"index"`
	DiscountValue float64        `json:"discount_value" gorm:"not null"`
	ValidFrom     time.Time      `json:"valid_from" gorm:"not null"`
	ValidTo       time.Time      `json:"valid_to" gorm:"not null"`
	UsageLimit    int            `json:"usage_limit"`
	UsedCount     int            `json:"used_count"`
	Active        bool           `json:"active" gorm:"default:true"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
