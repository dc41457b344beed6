package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/models"
	"github.com/nikhil-742/ShopNest/utils"
)

// ListProducts returns active products with their variants, paginated.
func ListProducts(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Product{}).Where("status = ?", models.ProductStatusActive)
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	var products []models.Product
	err := query.Preload("Variants").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		utils.LogError("Failed to list products: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", gin.H{"products": products}, total, page, limit)
}

// GetProductDetails returns one product with its variants and the best
// currently applicable offer.
func GetProductDetails(c *gin.Context) {
	var product models.Product
	err := config.DB.Preload("Variants").Preload("Category").First(&product, c.Param("id")).Error
	if err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	offer, err := utils.BestOfferForProduct(config.DB, product.ID, product.CategoryID)
	if err != nil {
		utils.LogError("Offer lookup failed for product %d: %v", product.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	data := gin.H{"product": product}
	if offer != nil {
		data["best_offer"] = gin.H{
			"id":             offer.ID,
			"name":           offer.Name,
			"scope":          offer.Scope,
			"discount_value": offer.DiscountValue,
		}
	}

	utils.Success(c, "Product retrieved successfully", data)
}

// UpdateVariantStockRequest sets a variant's absolute stock level
type UpdateVariantStockRequest struct {
	Stock int `json:"stock" binding:"gte=0"`
}

// AdminUpdateVariantStock sets a variant's stock and recomputes the parent
// product's aggregates in the same transaction.
func AdminUpdateVariantStock(c *gin.Context) {
	var req UpdateVariantStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	tx := config.DB.Begin()

	var variant models.ProductVariant
	if err := tx.First(&variant, c.Param("id")).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Product variant not found")
		return
	}

	if err := tx.Model(&variant).Update("stock", req.Stock).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update stock for variant %d: %v", variant.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if err := utils.RecomputeProductAggregates(tx, variant.ProductID); err != nil {
		tx.Rollback()
		utils.LogError("Aggregate recompute failed for product %d: %v", variant.ProductID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit stock update: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.LogInfo("Variant %d stock set to %d", variant.ID, req.Stock)
	utils.Success(c, "Stock updated successfully", gin.H{
		"variant_id": variant.ID,
		"stock":      req.Stock,
	})
}
