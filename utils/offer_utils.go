package utils

import (
	"time"

	"github.com/nikhil-742/ShopNest/models"
	"gorm.io/gorm"
)

// BestOfferForProduct returns the highest-value offer currently applicable
// to a product, considering product-scoped and category-scoped offers.
// Returns nil when nothing applies.
func BestOfferForProduct(tx *gorm.DB, productID, categoryID uint) (*models.Offer, error) {
	now := time.Now()
	var offers []models.Offer
	err := tx.Where("active = ? AND valid_from <= ? AND valid_to >= ?", true, now, now).
		Where("(scope = ? AND product_id = ?) OR (scope = ? AND category_id = ?)",
			models.OfferScopeProduct, productID, models.OfferScopeCategory, categoryID).
		Where("usage_limit = 0 OR used_count < usage_limit").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return PickBestOffer(offers), nil
}

// PickBestOffer selects the offer with the largest discount value. Ties go
// to product-scoped offers over category-scoped ones.
func PickBestOffer(offers []models.Offer) *models.Offer {
	var best *models.Offer
	for i := range offers {
		o := &offers[i]
		if best == nil ||
			o.DiscountValue > best.DiscountValue ||
			(o.DiscountValue == best.DiscountValue && o.Scope == models.OfferScopeProduct && best.Scope != models.OfferScopeProduct) {
			best = o
		}
	}
	return best
}

// OfferAmountForItem computes the absolute discount an offer grants on a
// line item. Offer discounts are percentages of the line gross.
func OfferAmountForItem(offer models.Offer, unitPrice float64, quantity int) float64 {
	return Round2(unitPrice * float64(quantity) * offer.DiscountValue / 100)
}

// ConsumeOfferUsage bumps an offer's usage counter, guarded against its
// limit so concurrent orders cannot over-consume a capped offer.
func ConsumeOfferUsage(tx *gorm.DB, offerID uint) error {
	res := tx.Model(&models.Offer{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", offerID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGlobalUsageExceeded
	}
	return nil
}
