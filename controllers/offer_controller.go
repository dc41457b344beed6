package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/models"
	"github.com/nikhil-742/ShopNest/utils"
)

// OfferRequest is the admin payload for a product or category offer
type OfferRequest struct {
	Name          string    `json:"name" binding:"required"`
	Scope         string    `json:"scope" binding:"required,oneof=product category"`
	ProductID     *uint     `json:"product_id"`
	CategoryID    *uint     `json:"category_id"`
	DiscountValue float64   `json:"discount_value" binding:"required,gt=0,lte=100"`
	ValidFrom     time.Time `json:"valid_from" binding:"required"`
	ValidTo       time.Time `json:"valid_to" binding:"required"`
	UsageLimit    int       `json:"usage_limit" binding:"gte=0"`
	Active        *bool     `json:"active"`
}

func (r OfferRequest) validate() utils.FieldValidationErrors {
	var errs utils.FieldValidationErrors
	if !r.ValidTo.After(r.ValidFrom) {
		errs = append(errs, utils.FieldValidationError{Field: "valid_to", Message: "Must be after valid_from"})
	}
	if r.Scope == models.OfferScopeProduct && r.ProductID == nil {
		errs = append(errs, utils.FieldValidationError{Field: "product_id", Message: "Required for product-scoped offers"})
	}
	if r.Scope == models.OfferScopeCategory && r.CategoryID == nil {
		errs = append(errs, utils.FieldValidationError{Field: "category_id", Message: "Required for category-scoped offers"})
	}
	return errs
}

// AdminCreateOffer creates a percentage offer on a product or category.
func AdminCreateOffer(c *gin.Context) {
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		utils.ValidationError(c, "Invalid offer", errs)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	offer := models.Offer{
		Name:          utils.SanitizeString(req.Name),
		Scope:         req.Scope,
		ProductID:     req.ProductID,
		CategoryID:    req.CategoryID,
		DiscountValue: req.DiscountValue,
		ValidFrom:     req.ValidFrom,
		ValidTo:       req.ValidTo,
		UsageLimit:    req.UsageLimit,
		Active:        active,
	}

	if err := config.DB.Create(&offer).Error; err != nil {
		utils.LogError("Failed to create offer: %v", err)
		utils.InternalServerError(c, "Failed to create offer", nil)
		return
	}

	utils.LogInfo("Offer %d (%s) created", offer.ID, offer.Name)
	utils.Created(c, "Offer created successfully", gin.H{"offer": offer})
}

// AdminListOffers returns all offers, paginated.
func AdminListOffers(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Offer{})
	if scope := c.Query("scope"); scope != "" {
		query = query.Where("scope = ?", scope)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count offers: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	var offers []models.Offer
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&offers).Error
	if err != nil {
		utils.LogError("Failed to list offers: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.SuccessWithPagination(c, "Offers retrieved successfully", gin.H{"offers": offers}, total, page, limit)
}

// AdminUpdateOffer edits an offer in place.
func AdminUpdateOffer(c *gin.Context) {
	var offer models.Offer
	if err := config.DB.First(&offer, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Offer not found")
		return
	}

	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		utils.ValidationError(c, "Invalid offer", errs)
		return
	}

	active := offer.Active
	if req.Active != nil {
		active = *req.Active
	}

	updates := map[string]interface{}{
		"name":           utils.SanitizeString(req.Name),
		"scope":          req.Scope,
		"product_id":     req.ProductID,
		"category_id":    req.CategoryID,
		"discount_value": req.DiscountValue,
		"valid_from":     req.ValidFrom,
		"valid_to":       req.ValidTo,
		"usage_limit":    req.UsageLimit,
		"active":         active,
	}
	if err := config.DB.Model(&offer).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update offer %d: %v", offer.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.Success(c, "Offer updated successfully", gin.H{"offer": offer})
}

// AdminDeleteOffer soft-deletes an offer. Order snapshots keep their
// recorded amounts.
func AdminDeleteOffer(c *gin.Context) {
	var offer models.Offer
	if err := config.DB.First(&offer, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Offer not found")
		return
	}

	if err := config.DB.Delete(&offer).Error; err != nil {
		utils.LogError("Failed to delete offer %d: %v", offer.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.LogInfo("Offer %d deleted", offer.ID)
	utils.Success(c, "Offer deleted successfully", nil)
}
