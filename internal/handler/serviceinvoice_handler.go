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

// ServiceInvoiceRequest defines the structure for service invoice creation.
// A nil subtotal derives the amount from the call's billable lines; warranty
// covered parts and labor are excluded.
type ServiceInvoiceRequest struct {
	ServiceCallID uint   `json:"service_call_id"`
	Subtotal      *int64 `json:"subtotal"`
	TaxRate       *int64 `json:"tax_rate"`
	Currency      string `json:"currency"`
	DueAt         string `json:"due_at"`
	Notes         string `json:"notes"`
}

func nextServiceInvoiceNumber(tx *gorm.DB, orgID uint) (string, error) {
	var count int64
	if result := tx.Unscoped().Model(&model.ServiceInvoice{}).Where("organization_id = ?", orgID).Count(&count); result.Error != nil {
		return "", result.Error
	}
	return fmt.Sprintf("SFT-%d-%04d", time.Now().Year(), count+1), nil
}

// ListServiceInvoices handles retrieving all service invoices
func ListServiceInvoices(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	query := database.GetDB().Where("organization_id = ?", sess.OrgID)
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var invoices []model.ServiceInvoice
	result := query.
		Preload("Customer").
		Preload("ServiceCall").
		Order("created_at DESC").
		Find(&invoices)
	if result.Error != nil {
		log.Error("Failed to list service invoices", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve service invoices"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": invoices})
}

// CreateServiceInvoice handles issuing a proforma invoice for a service call.
// Each call carries at most one invoice; a second attempt returns 409.
func CreateServiceInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req ServiceInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.ServiceCallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "service_call_id is required"})
	}
	if req.Subtotal != nil && *req.Subtotal < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subtotal must not be negative"})
	}
	if req.TaxRate != nil && (*req.TaxRate < 0 || *req.TaxRate > 10000) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tax_rate must be between 0 and 10000"})
	}

	var call model.ServiceCall
	result := database.GetDB().
		Preload("PartsUsed.Part").
		Where("id = ? AND organization_id = ?", req.ServiceCallID, sess.OrgID).
		First(&call)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service call not found"})
	}

	var existing int64
	database.GetDB().Model(&model.ServiceInvoice{}).
		Where("service_call_id = ?", call.ID).
		Count(&existing)
	if existing > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "service call already has an invoice"})
	}

	subtotal := model.ServiceCallSubtotal(&call)
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

	invoice := model.ServiceInvoice{
		OrganizationID: sess.OrgID,
		ServiceCallID:  call.ID,
		CustomerID:     call.CustomerID,
		Status:         model.InvoiceDraft,
		Currency:       currency,
		Subtotal:       subtotal,
		TaxRate:        taxRate,
		TaxAmount:      taxAmount,
		Total:          total,
		IssuedAt:       time.Now(),
		DueAt:          dueAt,
		Notes:          req.Notes,
	}

	err = withCodeRetry(func() error {
		return database.GetDB().Transaction(func(tx *gorm.DB) error {
			number, err := nextServiceInvoiceNumber(tx, sess.OrgID)
			if err != nil {
				return err
			}
			invoice.Number = number
			return tx.Create(&invoice).Error
		})
	})
	if err != nil {
		log.Error("Failed to create service invoice", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create service invoice"})
	}

	database.GetDB().
		Preload("Customer").
		Preload("ServiceCall").
		First(&invoice, invoice.ID)

	prometheus.InvoiceCounter.WithLabelValues("service_call", "create").Inc()
	log.Info("Service invoice created",
		zap.Uint("service_invoice_id", invoice.ID),
		zap.String("number", invoice.Number),
		zap.Int64("total", invoice.Total))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": invoice})
}

// GetServiceInvoice handles retrieving a single service invoice
func GetServiceInvoice(c echo.Context) error {
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var invoice model.ServiceInvoice
	result := database.GetDB().
		Preload("Customer").
		Preload("ServiceCall").
		Preload("ServiceCall.PartsUsed.Part").
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&invoice)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service invoice not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": invoice})
}

// UpdateServiceInvoice handles status transitions on a service invoice
func UpdateServiceInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var invoice model.ServiceInvoice
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&invoice)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service invoice not found"})
	}

	var req struct {
		Status *string `json:"status"`
		DueAt  *string `json:"due_at"`
		Notes  *string `json:"notes"`
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
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if result := database.GetDB().Model(&invoice).Updates(updates); result.Error != nil {
			log.Error("Failed to update service invoice", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update service invoice"})
		}
	}

	database.GetDB().
		Preload("Customer").
		Preload("ServiceCall").
		First(&invoice, invoice.ID)

	prometheus.InvoiceCounter.WithLabelValues("service_call", "update").Inc()
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": invoice})
}
