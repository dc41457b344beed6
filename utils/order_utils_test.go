package utils

import (
	"strings"
	"testing"

	"github.com/nikhil-742/ShopNest/models"
	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	a := GenerateOrderNumber()
	b := GenerateOrderNumber()

	assert.True(t, strings.HasPrefix(a, "ORD-"))
	assert.NotEqual(t, a, b)
}

func TestOrderTotal(t *testing.T) {
	assert.Equal(t, 1050.0, OrderTotal(1000, 50))
	assert.Equal(t, 50.0, OrderTotal(0, 50))
	assert.Equal(t, 50.0, OrderTotal(-100, 50), "discounted subtotal clips at zero before shipping")
}

func TestCODAllowed(t *testing.T) {
	assert.True(t, CODAllowed(1000, "Kerala"))
	assert.True(t, CODAllowed(50000, "Kerala"), "the limit itself is allowed")

	assert.False(t, CODAllowed(51000, "Kerala"))
	assert.False(t, CODAllowed(1000, "Lakshadweep"))
	assert.False(t, CODAllowed(1000, "jammu and kashmir"), "state match is case-insensitive")
	assert.False(t, CODAllowed(1000, " Ladakh "))
}

func TestCanRequestReturn(t *testing.T) {
	assert.True(t, CanRequestReturn(models.OrderStatusDelivered))

	// A rejected return is terminal: the item cannot re-enter the return
	// flow, so reject-then-return-again loops are impossible.
	assert.False(t, CanRequestReturn(models.OrderStatusRejected))
	assert.False(t, CanRequestReturn(models.OrderStatusReturned))
	assert.False(t, CanRequestReturn(models.OrderStatusReturnVerified))
	assert.False(t, CanRequestReturn(models.OrderStatusCancelled))
	assert.False(t, CanRequestReturn(models.OrderStatusShipped))
}

func TestSummaryStatusFromItems(t *testing.T) {
	t.Run("all cancelled", func(t *testing.T) {
		items := []models.OrderItem{
			{Status: models.OrderStatusCancelled},
			{Status: models.OrderStatusCancelled},
		}
		assert.Equal(t, models.OrderStatusCancelled, SummaryStatusFromItems(models.OrderStatusProcessing, items))
	})

	t.Run("all live delivered", func(t *testing.T) {
		items := []models.OrderItem{
			{Status: models.OrderStatusDelivered},
			{Status: models.OrderStatusCancelled},
			{Status: models.OrderStatusDelivered},
		}
		assert.Equal(t, models.OrderStatusDelivered, SummaryStatusFromItems(models.OrderStatusShipped, items))
	})

	t.Run("all live returned", func(t *testing.T) {
		items := []models.OrderItem{
			{Status: models.OrderStatusReturned},
			{Status: models.OrderStatusReturnVerified},
		}
		assert.Equal(t, models.OrderStatusReturned, SummaryStatusFromItems(models.OrderStatusDelivered, items))
	})

	t.Run("mixed keeps current", func(t *testing.T) {
		items := []models.OrderItem{
			{Status: models.OrderStatusDelivered},
			{Status: models.OrderStatusShipped},
		}
		assert.Equal(t, models.OrderStatusShipped, SummaryStatusFromItems(models.OrderStatusShipped, items))
	})

	t.Run("no items keeps current", func(t *testing.T) {
		assert.Equal(t, models.OrderStatusPending, SummaryStatusFromItems(models.OrderStatusPending, nil))
	})
}
