package utils

import (
	"testing"

	"github.com/nikhil-742/ShopNest/models"
	"github.com/stretchr/testify/assert"
)

func TestPickBestOffer(t *testing.T) {
	assert.Nil(t, PickBestOffer(nil))

	offers := []models.Offer{
		{ID: 1, Scope: models.OfferScopeCategory, DiscountValue: 10},
		{ID: 2, Scope: models.OfferScopeProduct, DiscountValue: 15},
		{ID: 3, Scope: models.OfferScopeCategory, DiscountValue: 12},
	}
	best := PickBestOffer(offers)
	assert.Equal(t, uint(2), best.ID)

	// Ties resolve to the product-scoped offer
	tied := []models.Offer{
		{ID: 1, Scope: models.OfferScopeCategory, DiscountValue: 10},
		{ID: 2, Scope: models.OfferScopeProduct, DiscountValue: 10},
	}
	assert.Equal(t, uint(2), PickBestOffer(tied).ID)
}

func TestOfferAmountForItem(t *testing.T) {
	offer := models.Offer{DiscountValue: 15}

	assert.Equal(t, 150.0, OfferAmountForItem(offer, 500, 2))
	assert.Equal(t, 29.99, OfferAmountForItem(offer, 199.95, 1))
}
