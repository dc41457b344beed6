package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/models"
	"github.com/nikhil-742/ShopNest/utils"
)

// ValidateDiscountRequest checks a code against an order amount before
// checkout commits to it.
type ValidateDiscountRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"order_amount" binding:"required,gt=0"`
}

// ValidateDiscount evaluates a promotion code for the caller without
// consuming any usage. Checkout re-evaluates inside its transaction; this
// endpoint exists so the cart can show the discount up front.
func ValidateDiscount(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req ValidateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	promo, amount, err := utils.EvaluatePromotion(config.DB, req.Code, req.OrderAmount, user.ID)
	if err != nil {
		respondPromotionError(c, err)
		return
	}

	utils.Success(c, "Promotion is valid", gin.H{
		"code":            promo.Code,
		"name":            promo.Name,
		"type":            promo.Type,
		"value":           promo.Value,
		"discount_amount": amount,
		"final_amount":    utils.Round2(req.OrderAmount - amount),
	})
}

// PromotionRequest is the admin payload for creating or updating a
// discount or coupon.
type PromotionRequest struct {
	Code           string    `json:"code" binding:"required"`
	Name           string    `json:"name" binding:"required"`
	Source         string    `json:"source" binding:"required,oneof=discount coupon"`
	Type           string    `json:"type" binding:"required,oneof=percent flat"`
	Value          float64   `json:"value" binding:"required,gt=0"`
	MinOrderAmount float64   `json:"min_order_amount" binding:"gte=0"`
	MaxDiscount    float64   `json:"max_discount" binding:"gte=0"`
	ValidFrom      time.Time `json:"valid_from" binding:"required"`
	ValidTo        time.Time `json:"valid_to" binding:"required"`
	UsageLimit     int       `json:"usage_limit" binding:"gte=0"`
	PerUserLimit   int       `json:"per_user_limit" binding:"gte=0"`
	Active         *bool     `json:"active"`
}

func (r PromotionRequest) validateWindow() error {
	if !r.ValidTo.After(r.ValidFrom) {
		return utils.FieldValidationErrors{{Field: "valid_to", Message: "Must be after valid_from"}}
	}
	if r.Type == models.PromotionTypePercent && r.Value > 100 {
		return utils.FieldValidationErrors{{Field: "value", Message: "Percentage cannot exceed 100"}}
	}
	return nil
}

// AdminCreatePromotion creates a discount or coupon. Codes are stored
// uppercase and must be unique across both sources.
func AdminCreatePromotion(c *gin.Context) {
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if err := req.validateWindow(); err != nil {
		utils.ValidationError(c, "Invalid promotion", err)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	promo := models.Promotion{
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:           utils.SanitizeString(req.Name),
		Source:         req.Source,
		Type:           req.Type,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		MaxDiscount:    req.MaxDiscount,
		ValidFrom:      req.ValidFrom,
		ValidTo:        req.ValidTo,
		UsageLimit:     req.UsageLimit,
		PerUserLimit:   req.PerUserLimit,
		Active:         active,
	}

	if err := config.DB.Create(&promo).Error; err != nil {
		utils.LogError("Failed to create promotion: %v", err)
		utils.Conflict(c, "A promotion with this code already exists", nil)
		return
	}

	utils.LogInfo("Promotion %s created", promo.Code)
	utils.Created(c, "Promotion created successfully", gin.H{"promotion": promo})
}

// AdminListPromotions returns promotions for one admin surface, selected
// by the source query parameter (discount or coupon).
func AdminListPromotions(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Promotion{})
	if source := c.Query("source"); source != "" {
		query = query.Where("source = ?", source)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count promotions: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	var promos []models.Promotion
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&promos).Error
	if err != nil {
		utils.LogError("Failed to list promotions: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.SuccessWithPagination(c, "Promotions retrieved successfully", gin.H{"promotions": promos}, total, page, limit)
}

// AdminUpdatePromotion edits a promotion in place. The code itself is
// immutable once orders may reference it; usage counters are never reset
// from here.
func AdminUpdatePromotion(c *gin.Context) {
	var promo models.Promotion
	if err := config.DB.First(&promo, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Promotion not found")
		return
	}

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if err := req.validateWindow(); err != nil {
		utils.ValidationError(c, "Invalid promotion", err)
		return
	}

	active := promo.Active
	if req.Active != nil {
		active = *req.Active
	}

	updates := map[string]interface{}{
		"name":             utils.SanitizeString(req.Name),
		"type":             req.Type,
		"value":            req.Value,
		"min_order_amount": req.MinOrderAmount,
		"max_discount":     req.MaxDiscount,
		"valid_from":       req.ValidFrom,
		"valid_to":         req.ValidTo,
		"usage_limit":      req.UsageLimit,
		"per_user_limit":   req.PerUserLimit,
		"active":           active,
	}
	if err := config.DB.Model(&promo).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update promotion %d: %v", promo.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.Success(c, "Promotion updated successfully", gin.H{"promotion": promo})
}

// AdminDeletePromotion soft-deletes a promotion. Orders that snapshotted it
// keep their stored discount fields.
func AdminDeletePromotion(c *gin.Context) {
	var promo models.Promotion
	if err := config.DB.First(&promo, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Promotion not found")
		return
	}

	if err := config.DB.Delete(&promo).Error; err != nil {
		utils.LogError("Failed to delete promotion %d: %v", promo.ID, err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.LogInfo("Promotion %s deleted", promo.Code)
	utils.Success(c, "Promotion deleted successfully", nil)
}
