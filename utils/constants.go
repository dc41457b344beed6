package utils

// Application constants
const (
	// Application name
	AppName = "ShopNest"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100
)

// Money and business-rule constants
const (
	// MaxWalletBalance caps a wallet; credits that would exceed it fail.
	MaxWalletBalance = 10000.0

	// Wallet top-up bounds per transaction
	WalletTopupMin = 1.0
	WalletTopupMax = 5000.0

	// CODMaxOrderTotal is the ceiling above which cash on delivery is refused.
	CODMaxOrderTotal = 50000.0

	// FlatShippingFee is charged per order and split equally across items
	// when allocating refunds.
	FlatShippingFee = 50.0

	// ReferralExpiryDays is how long a referral token stays redeemable.
	ReferralExpiryDays = 30

	// ReferralRewardPercent is the discount on the coupon spawned when a
	// referral completes.
	ReferralRewardPercent = 10.0
)

// RestrictedCODStates lists shipping states where cash on delivery is not
// offered regardless of order value.
var RestrictedCODStates = []string{
	"Andaman and Nicobar Islands",
	"Lakshadweep",
	"Ladakh",
	"Jammu and Kashmir",
}

// Error messages
const (
	ErrInvalidCredentials = "Invalid email or password"
	ErrUserBlocked        = "Your account has been blocked"
	ErrUnauthorized       = "Unauthorized access"
	ErrRecordNotFound     = "Record not found"
	ErrInternalServer     = "Internal server error"
)
