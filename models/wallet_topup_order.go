package models

import (
	"time"
)

// WalletTopupOrder tracks a payment-gateway order created to add funds to a
// wallet. Funds are credited only after signature and capture verification.
type WalletTopupOrder struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `json:"user_id"`
	RazorpayOrderID string    `json:"razorpay_order_id" gorm:"uniqueIndex"`
	Amount          float64   `json:"amount"`
	Status          string    `json:"status"` // pending, completed, failed
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
