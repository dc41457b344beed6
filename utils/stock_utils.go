package utils

import (
	"errors"

	"github.com/nikhil-742/ShopNest/models"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned when a variant cannot cover the
// requested quantity at the moment of the write.
var ErrInsufficientStock = errors.New("insufficient stock for this variant")

// DecrementVariantStock atomically takes quantity units off a variant. The
// stock check lives in the UPDATE's WHERE clause; two orders racing for the
// last units cannot both succeed.
func DecrementVariantStock(tx *gorm.DB, variantID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidAmount
	}
	res := tx.Model(&models.ProductVariant{}).
		Where("id = ? AND stock >= ?", variantID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// RestoreVariantStock puts quantity units back after a cancellation or a
// verified return.
func RestoreVariantStock(tx *gorm.DB, variantID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidAmount
	}
	return tx.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error
}

// RecomputeProductAggregates refreshes a product's total stock and derived
// status from its variants. Must run in the same transaction as the stock
// change so readers never observe a stale aggregate.
func RecomputeProductAggregates(tx *gorm.DB, productID uint) error {
	var totalStock int64
	err := tx.Model(&models.ProductVariant{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&totalStock).Error
	if err != nil {
		return err
	}

	status := models.ProductStatusActive
	if totalStock <= 0 {
		status = models.ProductStatusInactive
	}

	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"total_stock": totalStock,
			"status":      status,
		}).Error
}
