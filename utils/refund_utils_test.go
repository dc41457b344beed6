package utils

import (
	"testing"

	"github.com/nikhil-742/ShopNest/models"
	"github.com/stretchr/testify/assert"
)

func TestRefundForItem(t *testing.T) {
	// Two items of 600 and 400 gross, 100 shipping, 50 order discount.
	order := &models.Order{
		DiscountAmount: 50,
		Shipping:       100,
		OrderItems: []models.OrderItem{
			{ID: 1, Price: 600, Quantity: 1},
			{ID: 2, Price: 400, Quantity: 1},
		},
	}

	first := RefundForItem(order, &order.OrderItems[0])
	assert.Equal(t, 600.0, first.ItemGross)
	assert.Equal(t, 30.0, first.DiscountShare, "60 percent share of the 50 discount")
	assert.Equal(t, 0.0, first.OfferShare)
	assert.Equal(t, 50.0, first.ShippingShare, "shipping splits equally")
	assert.Equal(t, 620.0, first.Refund)

	second := RefundForItem(order, &order.OrderItems[1])
	assert.Equal(t, 20.0, second.DiscountShare)
	assert.Equal(t, 430.0, second.Refund)
}

func TestRefundForItemWithOffers(t *testing.T) {
	order := &models.Order{
		Shipping: 50,
		Offers: []models.OrderOffer{
			{OfferAmount: 100},
		},
		OrderItems: []models.OrderItem{
			{ID: 1, Price: 250, Quantity: 2}, // 500 gross
			{ID: 2, Price: 500, Quantity: 1}, // 500 gross
		},
	}

	b := RefundForItem(order, &order.OrderItems[0])
	assert.Equal(t, 500.0, b.ItemGross)
	assert.Equal(t, 50.0, b.OfferShare, "offer total splits by gross fraction")
	assert.Equal(t, 25.0, b.ShippingShare)
	assert.Equal(t, 475.0, b.Refund)
}

func TestRefundForItemNeverNegative(t *testing.T) {
	order := &models.Order{
		DiscountAmount: 500,
		OrderItems: []models.OrderItem{
			{ID: 1, Price: 10, Quantity: 1},
			{ID: 2, Price: 990, Quantity: 1},
		},
	}

	b := RefundForItem(order, &order.OrderItems[0])
	assert.GreaterOrEqual(t, b.Refund, 0.0)
}

func TestRefundDescription(t *testing.T) {
	order := &models.Order{OrderNumber: "ORD-20260901-ABCD1234", PaymentMethod: models.PaymentMethodOnline}

	assert.Equal(t,
		"Refund for order ORD-20260901-ABCD1234 (online) by system",
		RefundDescription(order, "system"))
	assert.Equal(t,
		"Refund for order ORD-20260901-ABCD1234 (online) by admin",
		RefundDescription(order, "admin"))
}

func TestRefundForItemSingleItemOrder(t *testing.T) {
	order := &models.Order{
		DiscountAmount: 50,
		Shipping:       50,
		OrderItems: []models.OrderItem{
			{ID: 1, Price: 300, Quantity: 1},
		},
	}

	b := RefundForItem(order, &order.OrderItems[0])
	// The single item carries the whole discount and all of shipping.
	assert.Equal(t, 300.0, b.Refund)
}
