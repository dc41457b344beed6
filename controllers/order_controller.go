package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/models"
	"github.com/nikhil-742/ShopNest/utils"
)

// ListOrders returns the caller's orders, newest first, paginated.
func ListOrders(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	page, limit := utils.GetPaginationParams(c)

	var total int64
	if err := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	var orders []models.Order
	err := config.DB.Where("user_id = ?", user.ID).
		Preload("OrderItems").
		Preload("Offers").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		utils.LogError("Failed to list orders: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", gin.H{"orders": orders}, total, page, limit)
}

// GetOrderDetails returns one of the caller's orders with items and
// per-item refund breakdowns.
func GetOrderDetails(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var order models.Order
	err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		Preload("OrderItems.ProductVariant").
		Preload("Offers").
		First(&order).Error
	if err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	breakdowns := make(map[uint]utils.RefundBreakdown, len(order.OrderItems))
	for i := range order.OrderItems {
		breakdowns[order.OrderItems[i].ID] = utils.RefundForItem(&order, &order.OrderItems[i])
	}

	utils.Success(c, "Order retrieved successfully", gin.H{
		"order":             order,
		"refund_breakdowns": breakdowns,
	})
}

// DownloadInvoice renders a PDF invoice for a delivered or completed order.
func DownloadInvoice(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var order models.Order
	err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		Preload("OrderItems.ProductVariant").
		First(&order).Error
	if err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status == models.OrderStatusPending || order.Status == models.OrderStatusCancelled {
		utils.BadRequest(c, "Invoice is not available for this order", nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, utils.AppName)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Invoice for order %s", order.OrderNumber))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Payment: %s (%s)", order.PaymentMethod, order.PaymentStatus))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 7, "Ship to")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, order.ShipLine1)
	pdf.Ln(5)
	if order.ShipLine2 != "" {
		pdf.Cell(0, 6, order.ShipLine2)
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("%s, %s %s", order.ShipCity, order.ShipState, order.ShipPostalCode))
	pdf.Ln(5)
	pdf.Cell(0, 6, order.ShipCountry)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.OrderItems {
		name := item.ProductVariant.Name
		if name == "" {
			name = item.ProductVariant.SKU
		}
		pdf.CellFormat(90, 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", item.Price*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	writeInvoiceTotal := func(label string, amount float64) {
		pdf.CellFormat(150, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", amount), "", 1, "R", false, 0, "")
	}
	writeInvoiceTotal("Subtotal", order.Subtotal)
	if order.DiscountAmount > 0 {
		writeInvoiceTotal(fmt.Sprintf("Discount (%s)", order.DiscountName), -order.DiscountAmount)
	}
	if offerTotal := order.Subtotal - order.SubtotalAfterDiscount - order.DiscountAmount; offerTotal > 0.009 {
		writeInvoiceTotal("Offers", -utils.Round2(offerTotal))
	}
	writeInvoiceTotal("Shipping", order.Shipping)
	pdf.SetFont("Arial", "B", 11)
	writeInvoiceTotal("Total", order.Total)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", order.OrderNumber))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to render invoice for %s: %v", order.OrderNumber, err)
	}
}
