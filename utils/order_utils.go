package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikhil-742/ShopNest/models"
)

// GenerateOrderNumber produces a human-readable unique order reference.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]))
}

// OrderTotal computes the payable total. Discounts and offers have already
// been subtracted from subtotalAfterDiscount; the total is clipped at zero
// before shipping is added so a large promotion can never make the order
// pay the customer.
func OrderTotal(subtotalAfterDiscount, shipping float64) float64 {
	if subtotalAfterDiscount < 0 {
		subtotalAfterDiscount = 0
	}
	return Round2(subtotalAfterDiscount + shipping)
}

// CODAllowed reports whether cash on delivery can be offered for the given
// order total and shipping state.
func CODAllowed(total float64, state string) bool {
	if total > CODMaxOrderTotal {
		return false
	}
	for _, s := range RestrictedCODStates {
		if strings.EqualFold(strings.TrimSpace(state), s) {
			return false
		}
	}
	return true
}

// CanRequestReturn reports whether an item is in a state the customer may
// return from. Only delivered items qualify; a rejected return is terminal
// and cannot be resubmitted.
func CanRequestReturn(status string) bool {
	return status == models.OrderStatusDelivered
}

// SummaryStatusFromItems rolls item statuses up into the order's summary
// status. The summary only moves forward: a terminal or aggregate state is
// derived from items, otherwise the current status stands. Cancelled items
// are excluded from the returned/delivered rollup so a partially cancelled
// order can still complete.
func SummaryStatusFromItems(current string, items []models.OrderItem) string {
	if len(items) == 0 {
		return current
	}

	live := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		if it.Status != models.OrderStatusCancelled {
			live = append(live, it)
		}
	}
	if len(live) == 0 {
		return models.OrderStatusCancelled
	}

	allReturned := true
	allDelivered := true
	for _, it := range live {
		if it.Status != models.OrderStatusReturned && it.Status != models.OrderStatusReturnVerified {
			allReturned = false
		}
		if it.Status != models.OrderStatusDelivered {
			allDelivered = false
		}
	}
	if allReturned {
		return models.OrderStatusReturned
	}
	if allDelivered {
		return models.OrderStatusDelivered
	}
	return current
}
