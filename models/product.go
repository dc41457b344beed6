package models

import (
	"time"

	"gorm.io/gorm"
)

// Product status constants. Status is derived from variant stock and is
// recomputed after every variant mutation, never set directly.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

type Product struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name" gorm:"not null"`
	Description string           `json:"description"`
	CategoryID  uint             `json:"category_id"`
	Category    Category         `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	TotalStock  int              `json:"total_stock" gorm:"default:0"`
	Status      string           `json:"status" gorm:"default:'active'"`
	Variants    []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `json:"-" gorm:"index"`
}

// ProductVariant carries the sellable unit: its own price and stock count.
// Stock is only ever changed with guarded increment/decrement updates.
type ProductVariant struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ProductID uint           `json:"product_id" gorm:"not null;index"`
	Product   Product        `json:"-" gorm:"foreignKey:ProductID"`
	Name      string         `json:"name"`
	SKU       string         `json:"sku" gorm:"uniqueIndex"`
	Price     float64        `json:"price" gorm:"not null"`
	Stock     int            `json:"stock" gorm:"default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
