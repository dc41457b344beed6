package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusProcessing     = "processing"
	OrderStatusShipped        = "shipped"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
	OrderStatusReturned       = "returned"
	OrderStatusReturnVerified = "return_verified"
	OrderStatusRejected       = "rejected"
)

// Payment status constants
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payment method constants
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID      uint   `json:"user_id"`
	User        User   `json:"-" gorm:"foreignKey:UserID"`

	// Shipping address snapshot, copied from the address book at placement
	ShipLine1      string `json:"ship_line1"`
	ShipLine2      string `json:"ship_line2"`
	ShipCity       string `json:"ship_city"`
	ShipState      string `json:"ship_state"`
	ShipCountry    string `json:"ship_country"`
	ShipPostalCode string `json:"ship_postal_code"`

	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`

	Subtotal              float64 `json:"subtotal"`
	SubtotalAfterDiscount float64 `json:"subtotal_after_discount"`
	Shipping              float64 `json:"shipping"`
	Total                 float64 `json:"total"`

	// Applied promotion snapshot; the promotion row may change later,
	// the order keeps what was actually applied.
	DiscountID     *uint   `json:"discount_id,omitempty"`
	DiscountName   string  `json:"discount_name,omitempty"`
	DiscountType   string  `json:"discount_type,omitempty"`
	DiscountValue  float64 `json:"discount_value,omitempty"`
	DiscountAmount float64 `json:"discount_amount"`

	Offers []OrderOffer `json:"offers" gorm:"foreignKey:OrderID"`

	Status             string     `json:"status"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	ReturnRejectReason string     `json:"return_reject_reason,omitempty"`
	ReturnVerifiedBy   *uint      `json:"return_verified_by,omitempty"`
	ReturnVerifiedAt   *time.Time `json:"return_verified_at,omitempty"`

	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	OrderItems []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	OrderID          uint           `json:"order_id" gorm:"index"`
	ProductVariantID uint           `json:"product_variant_id"`
	ProductVariant   ProductVariant `json:"product_variant" gorm:"foreignKey:ProductVariantID"`
	Quantity         int            `json:"quantity"`
	// Unit price at time of purchase; immutable once written.
	Price float64 `json:"price"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	Cancelled          bool   `json:"cancelled,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
	Returned           bool   `json:"returned,omitempty"`
	ReturnReason       string `json:"return_reason,omitempty"`
}

// OrderOffer is the per-order snapshot of a promotional offer that reduced
// the payable amount at placement time.
type OrderOffer struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `json:"order_id" gorm:"index"`
	OfferID     uint    `json:"offer_id"`
	OfferAmount float64 `json:"offer_amount"`
}
