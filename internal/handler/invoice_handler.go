package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
	"github.com/ozgundoganbatuhan-lang/asansor/prometheus"
)

// InvoiceRequest defines the structure for invoice creation requests.
// TaxRate is basis points of a percent (2000 = 20%). A nil subtotal derives
// the amount from the work order's parts, labor and service fee.
type InvoiceRequest struct {
	WorkOrderID uint   `json:"work_order_id"`
	Subtotal    *int64 `json:"subtotal"`
	TaxRate     *int64 `json:"tax_rate"`
	Currency    string `json:"currency"`
	DueAt       string `json:"due_at"`
}

func nextInvoiceNumber(tx *gorm.DB, orgID uint) (string, error) {
	var count int64
	if result := tx.Unscoped().Model(&model.Invoice{}).Where("organization_id = ?", orgID).Count(&count); result.Error != nil {
		return "", result.Error
	}
	return fmt.Sprintf("INV-%d-%04d", time.Now().Year(), count+1), nil
}

// ListInvoices handles retrieving all invoices of the organization
func ListInvoices(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	query := database.GetDB().Where("organization_id = ?", sess.OrgID)
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var invoices []model.Invoice
	result := query.
		Preload("Customer").
		Preload("WorkOrder").
		Order("created_at DESC").
		Find(&invoices)
	if result.Error != nil {
		log.Error("Failed to list invoices", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve invoices"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": invoices})
}

// CreateInvoice handles issuing a proforma invoice for a work order. Each
// work order carries at most one invoice; a second attempt returns 409.
func CreateInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req InvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.WorkOrderID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "work_order_id is required"})
	}
	if req.Subtotal != nil && *req.Subtotal < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subtotal must not be negative"})
	}
	if req.TaxRate != nil && (*req.TaxRate < 0 || *req.TaxRate > 10000) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tax_rate must be between 0 and 10000"})
	}

	var order model.WorkOrder
	result := database.GetDB().
		Preload("PartsUsed.Part").
		Where("id = ? AND organization_id = ?", req.WorkOrderID, sess.OrgID).
		First(&order)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "work order not found"})
	}

	var existing int64
	database.GetDB().Model(&model.Invoice{}).
		Where("work_order_id = ?", order.ID).
		Count(&existing)
	if existing > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "work order already has an invoice"})
	}

	subtotal := model.WorkOrderSubtotal(&order)
	if req.Subtotal != nil {
		subtotal = *req.Subtotal
	}
	taxRate := int64(2000)
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	taxAmount, total := model.InvoiceTotals(subtotal, taxRate)

	currency := req.Currency
	if currency == "" {
		currency = "TRY"
	}
	dueAt, err := parseTime(req.DueAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	invoice := model.Invoice{
		OrganizationID: sess.OrgID,
		WorkOrderID:    order.ID,
		CustomerID:     order.CustomerID,
		Status:         model.InvoiceDraft,
		Currency:       currency,
		Subtotal:       subtotal,
		TaxRate:        taxRate,
		TaxAmount:      taxAmount,
		Total:          total,
		IssuedAt:       time.Now(),
		DueAt:          dueAt,
	}

	err = withCodeRetry(func() error {
		return database.GetDB().Transaction(func(tx *gorm.DB) error {
			number, err := nextInvoiceNumber(tx, sess.OrgID)
			if err != nil {
				return err
			}
			invoice.Number = number
			return tx.Create(&invoice).Error
		})
	})
	if err != nil {
		log.Error("Failed to create invoice", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create invoice"})
	}

	database.GetDB().
		Preload("Customer").
		Preload("WorkOrder").
		First(&invoice, invoice.ID)

	prometheus.InvoiceCounter.WithLabelValues("work_order", "create").Inc()
	log.Info("Invoice created",
		zap.Uint("invoice_id", invoice.ID),
		zap.String("number", invoice.Number),
		zap.Int64("total", invoice.Total))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": invoice})
}

// GetInvoice handles retrieving a single invoice
func GetInvoice(c echo.Context) error {
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var invoice model.Invoice
	result := database.GetDB().
		Preload("Customer").
		Preload("WorkOrder").
		Preload("WorkOrder.PartsUsed.Part").
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&invoice)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": invoice})
}

// UpdateInvoice handles status transitions. Moving to PAID stamps the
// payment time; recomputing amounts on an issued invoice is not supported.
func UpdateInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var invoice model.Invoice
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&invoice)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
	}

	var req struct {
		Status *string `json:"status"`
		DueAt  *string `json:"due_at"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		if !model.ValidInvoiceStatus(*req.Status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice status"})
		}
		updates["status"] = *req.Status
		if *req.Status == model.InvoicePaid && invoice.PaidAt == nil {
			updates["paid_at"] = time.Now()
		}
	}
	if req.DueAt != nil {
		t, err := parseTime(*req.DueAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		updates["due_at"] = t
	}

	if len(updates) > 0 {
		if result := database.GetDB().Model(&invoice).Updates(updates); result.Error != nil {
			log.Error("Failed to update invoice", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update invoice"})
		}
	}

	database.GetDB().
		Preload("Customer").
		Preload("WorkOrder").
		First(&invoice, invoice.ID)

	prometheus.InvoiceCounter.WithLabelValues("work_order", "update").Inc()
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": invoice})
}
