package utils

import (
	"testing"
	"time"

	"github.com/nikhil-742/ShopNest/models"
	"github.com/stretchr/testify/assert"
)

func activePromotion() models.Promotion {
	return models.Promotion{
		Code:           "SAVE10",
		Name:           "Save 10%",
		Source:         models.PromotionSourceDiscount,
		Type:           models.PromotionTypePercent,
		Value:          10,
		MinOrderAmount: 500,
		MaxDiscount:    100,
		ValidFrom:      time.Now().Add(-time.Hour),
		ValidTo:        time.Now().Add(time.Hour),
		Active:         true,
	}
}

func TestCalculatePromotionDiscount(t *testing.T) {
	p := activePromotion()

	// 10% of 1200 is 120, clipped to the 100 max
	assert.Equal(t, 100.0, CalculatePromotionDiscount(p, 1200))

	// Below the clip point the raw percentage applies
	assert.Equal(t, 60.0, CalculatePromotionDiscount(p, 600))

	// Flat promotions ignore the order amount until it clips
	flat := p
	flat.Type = models.PromotionTypeFlat
	flat.Value = 250
	flat.MaxDiscount = 0
	assert.Equal(t, 250.0, CalculatePromotionDiscount(flat, 1000))
	assert.Equal(t, 200.0, CalculatePromotionDiscount(flat, 200), "discount never exceeds the order amount")
}

func TestValidatePromotion(t *testing.T) {
	now := time.Now()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidatePromotion(activePromotion(), 1200, 0, now))
	})

	t.Run("inactive", func(t *testing.T) {
		p := activePromotion()
		p.Active = false
		assert.ErrorIs(t, ValidatePromotion(p, 1200, 0, now), ErrPromotionNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		p := activePromotion()
		p.ValidTo = now.Add(-time.Minute)
		assert.ErrorIs(t, ValidatePromotion(p, 1200, 0, now), ErrPromotionNotFound)
	})

	t.Run("below minimum", func(t *testing.T) {
		assert.ErrorIs(t, ValidatePromotion(activePromotion(), 499.99, 0, now), ErrMinimumAmountNotMet)
	})

	t.Run("global limit reached", func(t *testing.T) {
		p := activePromotion()
		p.UsageLimit = 5
		p.UsedCount = 5
		assert.ErrorIs(t, ValidatePromotion(p, 1200, 0, now), ErrGlobalUsageExceeded)
	})

	t.Run("per-user limit reached", func(t *testing.T) {
		p := activePromotion()
		p.PerUserLimit = 1
		assert.ErrorIs(t, ValidatePromotion(p, 1200, 1, now), ErrPerUserUsageExceeded)
	})

	t.Run("zero limits are uncapped", func(t *testing.T) {
		p := activePromotion()
		p.UsedCount = 10000
		assert.NoError(t, ValidatePromotion(p, 1200, 10000, now))
	})
}
