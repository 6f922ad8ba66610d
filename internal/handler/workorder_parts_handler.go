package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
	"github.com/ozgundoganbatuhan-lang/asansor/prometheus"
)

var errInsufficientStock = errors.New("insufficient stock")

// PartUsageRequest defines the structure for attaching a part to a work order
type PartUsageRequest struct {
	PartID   uint `json:"part_id"`
	Quantity int  `json:"quantity"`
}

// AddWorkOrderPart handles consuming stock on a work order. The stock
// deduction and the usage row are written in one transaction with a
// conditional update, so stock never goes negative.
func AddWorkOrderPart(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req PartUsageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.PartID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "part_id is required"})
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	var order model.WorkOrder
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&order)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "work order not found"})
	}

	var part model.Part
	result = database.GetDB().
		Where("id = ? AND organization_id = ?", req.PartID, sess.OrgID).
		First(&part)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
	}

	usage := model.PartUsage{
		WorkOrderID: order.ID,
		PartID:      part.ID,
		Quantity:    req.Quantity,
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		deduct := tx.Model(&model.Part{}).
			Where("id = ? AND stock >= ?", part.ID, req.Quantity).
			Update("stock", gorm.Expr("stock - ?", req.Quantity))
		if deduct.Error != nil {
			return deduct.Error
		}
		if deduct.RowsAffected == 0 {
			return errInsufficientStock
		}
		return tx.Create(&usage).Error
	})
	if errors.Is(err, errInsufficientStock) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient stock"})
	}
	if err != nil {
		log.Error("Failed to add part usage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add part"})
	}

	database.GetDB().Preload("Part").First(&usage, usage.ID)

	prometheus.StockMovementCounter.WithLabelValues("deduct").Inc()
	log.Info("Part used on work order",
		zap.Uint("work_order_id", order.ID),
		zap.Uint("part_id", part.ID),
		zap.Int("quantity", req.Quantity))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": usage})
}

// RemoveWorkOrderPart handles removing a usage line and restoring its stock
func RemoveWorkOrderPart(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	usageID, err := idParam(c, "usageId")
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

	var usage model.PartUsage
	result = database.GetDB().
		Where("id = ? AND work_order_id = ?", usageID, order.ID).
		First(&usage)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "part usage not found"})
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		restore := tx.Model(&model.Part{}).
			Where("id = ?", usage.PartID).
			Update("stock", gorm.Expr("stock + ?", usage.Quantity))
		if restore.Error != nil {
			return restore.Error
		}
		return tx.Delete(&usage).Error
	})
	if err != nil {
		log.Error("Failed to remove part usage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to remove part"})
	}

	prometheus.StockMovementCounter.WithLabelValues("restore").Inc()
	log.Info("Part usage removed",
		zap.Uint("work_order_id", order.ID),
		zap.Uint("part_id", usage.PartID),
		zap.Int("quantity", usage.Quantity))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
