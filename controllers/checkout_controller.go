package controllers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/models"
	"github.com/nikhil-742/ShopNest/utils"
)

// PlaceOrderItemRequest is one line of a new order
type PlaceOrderItemRequest struct {
	ProductVariantID uint `json:"product_variant_id" binding:"required"`
	Quantity         int  `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest represents a new order. Either an address-book ID or an
// inline shipping address must be provided; the order stores a snapshot
// either way.
type PlaceOrderRequest struct {
	Items         []PlaceOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	AddressID     *uint                   `json:"address_id"`
	Address       *ShippingAddressRequest `json:"address"`
	PaymentMethod string                  `json:"payment_method" binding:"required,oneof=cod online"`
	DiscountCode  string                  `json:"discount_code"`
}

// ShippingAddressRequest is an inline shipping address
type ShippingAddressRequest struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// PlaceOrder creates an order: validates the address, prices the items,
// applies the best offers and an optional promotion code, enforces payment
// method rules, and takes stock — all inside one transaction so a failure
// at any step leaves nothing behind.
func PlaceOrder(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	ship, err := resolveShippingAddress(user.ID, req)
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Error(c, appErr.Code, appErr.Message, nil)
			return
		}
		utils.BadRequest(c, err.Error(), nil)
		return
	}
	if verrs := utils.ValidateShippingAddress(ship.Line1, ship.City, ship.State, ship.Country, ship.PostalCode); len(verrs) > 0 {
		utils.ValidationError(c, "Invalid shipping address", verrs)
		return
	}

	tx := config.DB.Begin()

	order := models.Order{
		OrderNumber:    utils.GenerateOrderNumber(),
		UserID:         user.ID,
		ShipLine1:      ship.Line1,
		ShipLine2:      ship.Line2,
		ShipCity:       ship.City,
		ShipState:      ship.State,
		ShipCountry:    ship.Country,
		ShipPostalCode: ship.PostalCode,
		PaymentMethod:  req.PaymentMethod,
		Status:         models.OrderStatusPending,
		PaymentStatus:  models.PaymentStatusPending,
	}

	itemPaymentStatus := models.PaymentStatusPending
	if req.PaymentMethod == models.PaymentMethodOnline {
		itemPaymentStatus = models.PaymentStatusPaid
		order.PaymentStatus = models.PaymentStatusPaid
	}

	subtotal := 0.0
	offerTotal := 0.0
	var orderOffers []models.OrderOffer

	for _, line := range req.Items {
		var variant models.ProductVariant
		if err := tx.Preload("Product").First(&variant, line.ProductVariantID).Error; err != nil {
			tx.Rollback()
			utils.NotFound(c, fmt.Sprintf("Product variant %d not found", line.ProductVariantID))
			return
		}

		if err := utils.DecrementVariantStock(tx, variant.ID, line.Quantity); err != nil {
			tx.Rollback()
			if errors.Is(err, utils.ErrInsufficientStock) {
				utils.BadRequest(c, fmt.Sprintf("Not enough stock for %s", variant.SKU), nil)
				return
			}
			utils.LogError("Stock decrement failed for variant %d: %v", variant.ID, err)
			utils.InternalServerError(c, utils.ErrInternalServer, nil)
			return
		}
		if err := utils.RecomputeProductAggregates(tx, variant.ProductID); err != nil {
			tx.Rollback()
			utils.LogError("Aggregate recompute failed for product %d: %v", variant.ProductID, err)
			utils.InternalServerError(c, utils.ErrInternalServer, nil)
			return
		}

		lineGross := variant.Price * float64(line.Quantity)
		subtotal += lineGross

		offer, err := utils.BestOfferForProduct(tx, variant.ProductID, variant.Product.CategoryID)
		if err != nil {
			tx.Rollback()
			utils.LogError("Offer lookup failed: %v", err)
			utils.InternalServerError(c, utils.ErrInternalServer, nil)
			return
		}
		if offer != nil {
			amount := utils.OfferAmountForItem(*offer, variant.Price, line.Quantity)
			if amount > 0 {
				// A concurrently exhausted offer just stops applying;
				// anything else poisons the transaction and must fail.
				switch err := utils.ConsumeOfferUsage(tx, offer.ID); {
				case err == nil:
					offerTotal += amount
					orderOffers = append(orderOffers, models.OrderOffer{
						OfferID:     offer.ID,
						OfferAmount: amount,
					})
				case !errors.Is(err, utils.ErrGlobalUsageExceeded):
					tx.Rollback()
					utils.LogError("Offer usage consume failed for offer %d: %v", offer.ID, err)
					utils.InternalServerError(c, utils.ErrInternalServer, nil)
					return
				}
			}
		}

		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductVariantID: variant.ID,
			Quantity:         line.Quantity,
			Price:            variant.Price,
			Status:           models.OrderStatusPending,
			PaymentStatus:    itemPaymentStatus,
		})
	}

	order.Subtotal = utils.Round2(subtotal)
	order.Offers = orderOffers

	discountAmount := 0.0
	if req.DiscountCode != "" {
		promo, amount, err := utils.EvaluatePromotion(tx, req.DiscountCode, order.Subtotal, user.ID)
		if err != nil {
			tx.Rollback()
			respondPromotionError(c, err)
			return
		}
		if err := utils.ConsumePromotionUsage(tx, promo, user.ID); err != nil {
			tx.Rollback()
			respondPromotionError(c, err)
			return
		}
		discountAmount = amount
		order.DiscountID = &promo.ID
		order.DiscountName = promo.Name
		order.DiscountType = promo.Type
		order.DiscountValue = promo.Value
		order.DiscountAmount = amount
	}

	order.SubtotalAfterDiscount = utils.Round2(order.Subtotal - offerTotal - discountAmount)
	if order.SubtotalAfterDiscount < 0 {
		order.SubtotalAfterDiscount = 0
	}
	order.Shipping = utils.FlatShippingFee
	order.Total = utils.OrderTotal(order.SubtotalAfterDiscount, order.Shipping)

	if req.PaymentMethod == models.PaymentMethodCOD && !utils.CODAllowed(order.Total, order.ShipState) {
		tx.Rollback()
		utils.BadRequest(c, "Cash on delivery is not available for this order", nil)
		return
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order: %v", err)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit order: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.LogInfo("Order %s placed by user %d, total %.2f", order.OrderNumber, user.ID, order.Total)
	go utils.SendOrderConfirmation(user.Email, &order)
	go completeReferralForFirstOrder(user.ID)

	utils.Created(c, "Order placed successfully", gin.H{"order": order})
}

func resolveShippingAddress(userID uint, req PlaceOrderRequest) (*ShippingAddressRequest, error) {
	if req.AddressID != nil {
		var addr models.Address
		if err := config.DB.Where("id = ? AND user_id = ?", *req.AddressID, userID).First(&addr).Error; err != nil {
			return nil, utils.NotFoundError("Address not found", err)
		}
		return &ShippingAddressRequest{
			Line1:      addr.Line1,
			Line2:      addr.Line2,
			City:       addr.City,
			State:      addr.State,
			Country:    addr.Country,
			PostalCode: addr.PostalCode,
		}, nil
	}
	if req.Address != nil {
		return req.Address, nil
	}
	return nil, utils.BadRequestError("Either address_id or address is required", nil)
}

func respondPromotionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrPromotionNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, utils.ErrMinimumAmountNotMet),
		errors.Is(err, utils.ErrGlobalUsageExceeded),
		errors.Is(err, utils.ErrPerUserUsageExceeded):
		utils.BadRequest(c, err.Error(), nil)
	default:
		utils.LogError("Promotion evaluation failed: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
	}
}
