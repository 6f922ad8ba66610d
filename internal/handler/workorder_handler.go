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

// WorkOrderRequest defines the structure for work order creation requests.
// Cost fields are integer minor-currency units.
type WorkOrderRequest struct {
	CustomerID   uint   `json:"customer_id"`
	AssetID      *uint  `json:"asset_id"`
	TechnicianID *uint  `json:"technician_id"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	Note         string `json:"note"`
	LaborCost    int64  `json:"labor_cost"`
	ServiceFee   int64  `json:"service_fee"`
	ScheduledAt  string `json:"scheduled_at"`
}

// nextWorkOrderCode builds the next sequential code for the organization.
// Soft-deleted orders keep their place in the sequence, their code is never
// reissued. Runs inside the insert transaction; the caller retries on a
// code collision via withCodeRetry.
func nextWorkOrderCode(tx *gorm.DB, orgID uint) (string, error) {
	var count int64
	if result := tx.Unscoped().Model(&model.WorkOrder{}).Where("organization_id = ?", orgID).Count(&count); result.Error != nil {
		return "", result.Error
	}
	yy := time.Now().Year() % 100
	return fmt.Sprintf("WO-%02d-%05d", yy, count+1), nil
}

// ListWorkOrders handles retrieving all work orders, optionally filtered by customer
func ListWorkOrders(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	query := database.GetDB().Where("organization_id = ?", sess.OrgID)
	if customerID := c.QueryParam("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var orders []model.WorkOrder
	result := query.
		Preload("Customer").
		Preload("Technician").
		Preload("Asset").
		Preload("PartsUsed.Part").
		Preload("Invoice").
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		log.Error("Failed to list work orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve work orders"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": orders})
}

// CreateWorkOrder handles creating a new work order with a generated code
func CreateWorkOrder(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req WorkOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.CustomerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id is required"})
	}
	if req.Type == "" {
		req.Type = model.WorkOrderFault
	}
	if !model.ValidWorkOrderType(req.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid work order type"})
	}
	if req.Status == "" {
		req.Status = model.WorkOrderPending
	}
	if !model.ValidWorkOrderStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid work order status"})
	}
	if req.Priority == "" {
		req.Priority = "Normal"
	}
	if req.LaborCost < 0 || req.ServiceFee < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "costs must not be negative"})
	}
	scheduledAt, err := parseTime(req.ScheduledAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// Verify customer belongs to org
	var customer model.Customer
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", req.CustomerID, sess.OrgID).
		First(&customer)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	order := model.WorkOrder{
		OrganizationID: sess.OrgID,
		CustomerID:     req.CustomerID,
		AssetID:        req.AssetID,
		TechnicianID:   req.TechnicianID,
		Type:           req.Type,
		Status:         req.Status,
		Priority:       req.Priority,
		Note:           req.Note,
		LaborCost:      req.LaborCost,
		ServiceFee:     req.ServiceFee,
		ScheduledAt:    scheduledAt,
	}

	err = withCodeRetry(func() error {
		return database.GetDB().Transaction(func(tx *gorm.DB) error {
			code, err := nextWorkOrderCode(tx, sess.OrgID)
			if err != nil {
				return err
			}
			order.Code = code
			return tx.Create(&order).Error
		})
	})
	if err != nil {
		log.Error("Failed to create work order", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create work order"})
	}

	database.GetDB().
		Preload("Customer").
		Preload("Technician").
		Preload("Asset").
		First(&order, order.ID)

	prometheus.WorkOrderCounter.WithLabelValues("create").Inc()
	log.Info("Work order created",
		zap.Uint("work_order_id", order.ID),
		zap.String("code", order.Code),
		zap.String("type", order.Type))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": order})
}

// GetWorkOrder handles retrieving a single work order with its relations
func GetWorkOrder(c echo.Context) error {
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var order model.WorkOrder
	result := database.GetDB().
		Preload("Customer").
		Preload("Asset").
		Preload("Technician").
		Preload("PartsUsed.Part").
		Preload("Invoice").
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&order)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "work order not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": order})
}

// UpdateWorkOrder handles partially updating a work order. Statuses are a
// plain enumeration, any accepted value may be assigned.
func UpdateWorkOrder(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var order model.WorkOrder
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&order)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "work order not found"})
	}

	var req struct {
		Status       *string `json:"status"`
		TechnicianID *uint   `json:"technician_id"`
		AssetID      *uint   `json:"asset_id"`
		Note         *string `json:"note"`
		Priority     *string `json:"priority"`
		LaborCost    *int64  `json:"labor_cost"`
		ServiceFee   *int64  `json:"service_fee"`
		ScheduledAt  *string `json:"scheduled_at"`
		CompletedAt  *string `json:"completed_at"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		if !model.ValidWorkOrderStatus(*req.Status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid work order status"})
		}
		updates["status"] = *req.Status
	}
	if req.TechnicianID != nil {
		updates["technician_id"] = *req.TechnicianID
	}
	if req.AssetID != nil {
		updates["asset_id"] = *req.AssetID
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.LaborCost != nil {
		updates["labor_cost"] = *req.LaborCost
	}
	if req.ServiceFee != nil {
		updates["service_fee"] = *req.ServiceFee
	}
	if req.ScheduledAt != nil {
		t, err := parseTime(*req.ScheduledAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		updates["scheduled_at"] = t
	}
	if req.CompletedAt != nil {
		t, err := parseTime(*req.CompletedAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		updates["completed_at"] = t
	}

	if len(updates) > 0 {
		if result := database.GetDB().Model(&order).Updates(updates); result.Error != nil {
			log.Error("Failed to update work order", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update work order"})
		}
	}

	database.GetDB().
		Preload("Customer").
		Preload("Asset").
		Preload("Technician").
		Preload("PartsUsed.Part").
		Preload("Invoice").
		First(&order, order.ID)

	prometheus.WorkOrderCounter.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": order})
}

// DeleteWorkOrder handles deleting a work order (soft delete)
func DeleteWorkOrder(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var order model.WorkOrder
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&order)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "work order not found"})
	}

	if result := database.GetDB().Delete(&order); result.Error != nil {
		log.Error("Failed to delete work order", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete work order"})
	}

	prometheus.WorkOrderCounter.WithLabelValues("delete").Inc()
	log.Info("Work order deleted", zap.Uint("work_order_id", id), zap.String("code", order.Code))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
