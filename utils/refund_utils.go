package utils

import (
	"fmt"

	"github.com/nikhil-742/ShopNest/models"
	"gorm.io/gorm"
)

// RefundBreakdown explains how an item's refund amount was derived. The
// item gross is reduced by its proportional share of the order-level
// discount and offers, and increased by its share of shipping.
type RefundBreakdown struct {
	ItemGross     float64 `json:"item_gross"`
	DiscountShare float64 `json:"discount_share"`
	OfferShare    float64 `json:"offer_share"`
	ShippingShare float64 `json:"shipping_share"`
	Refund        float64 `json:"refund"`
}

// RefundForItem allocates a refund for one order item using proportional
// shares. Discount and offer totals are split by the item's fraction of the
// order gross; shipping is split equally across all items. The result never
// goes negative.
func RefundForItem(order *models.Order, item *models.OrderItem) RefundBreakdown {
	itemGross := item.Price * float64(item.Quantity)

	totalGross := 0.0
	for _, it := range order.OrderItems {
		totalGross += it.Price * float64(it.Quantity)
	}
	if totalGross <= 0 {
		totalGross = 1
	}

	offerTotal := 0.0
	for _, of := range order.Offers {
		offerTotal += of.OfferAmount
	}

	fraction := itemGross / totalGross
	discountShare := Round2(order.DiscountAmount * fraction)
	offerShare := Round2(offerTotal * fraction)

	shippingShare := 0.0
	if n := len(order.OrderItems); n > 0 {
		shippingShare = Round2(order.Shipping / float64(n))
	}

	refund := itemGross - discountShare - offerShare + shippingShare
	if refund < 0 {
		refund = 0
	}

	return RefundBreakdown{
		ItemGross:     Round2(itemGross),
		DiscountShare: discountShare,
		OfferShare:    offerShare,
		ShippingShare: shippingShare,
		Refund:        Round2(refund),
	}
}

// RefundDescription labels a refund ledger entry with the order number,
// payment method and acting party ("system" for self-service
// cancellations, "admin" for staff-triggered refunds).
func RefundDescription(order *models.Order, actor string) string {
	return fmt.Sprintf("Refund for order %s (%s) by %s", order.OrderNumber, order.PaymentMethod, actor)
}

// ProcessItemRefund credits the proportional refund for an item to the
// order owner's wallet and marks the item refunded. Idempotent: an item
// already marked refunded yields a zero amount and no writes. Runs inside
// the caller's transaction.
func ProcessItemRefund(tx *gorm.DB, order *models.Order, item *models.OrderItem, actor string) (float64, error) {
	if item.PaymentStatus == models.PaymentStatusRefunded {
		return 0, nil
	}

	// Claim the item first; the guard makes concurrent refund attempts
	// settle on exactly one winner before any money moves.
	res := tx.Model(&models.OrderItem{}).
		Where("id = ? AND payment_status <> ?", item.ID, models.PaymentStatusRefunded).
		Update("payment_status", models.PaymentStatusRefunded)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}
	item.PaymentStatus = models.PaymentStatusRefunded

	breakdown := RefundForItem(order, item)
	if breakdown.Refund > 0 {
		wallet, err := GetOrCreateWallet(tx, order.UserID)
		if err != nil {
			return 0, err
		}
		if err := CreditWallet(tx, wallet, breakdown.Refund, RefundDescription(order, actor), &order.ID); err != nil {
			return 0, err
		}
	}

	return breakdown.Refund, nil
}
