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

// ServicePartUsageRequest defines the structure for attaching a part to a
// service call. A nil unit price falls back to the part's list price.
type ServicePartUsageRequest struct {
	PartID            uint   `json:"part_id"`
	Quantity          int    `json:"quantity"`
	UnitPrice         *int64 `json:"unit_price"`
	IsWarrantyCovered bool   `json:"is_warranty_covered"`
}

// AddServiceCallPart handles consuming stock on a service call
func AddServiceCallPart(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req ServicePartUsageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.PartID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "part_id is required"})
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	if req.UnitPrice != nil && *req.UnitPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unit_price must not be negative"})
	}

	var call model.ServiceCall
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&call)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service call not found"})
	}

	var part model.Part
	result = database.GetDB().
		Where("id = ? AND organization_id = ?", req.PartID, sess.OrgID).
		First(&part)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
	}

	unitPrice := part.Price
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	usage := model.ServicePartUsage{
		ServiceCallID:     call.ID,
		PartID:            part.ID,
		Quantity:          req.Quantity,
		UnitPrice:         unitPrice,
		IsWarrantyCovered: req.IsWarrantyCovered,
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
		log.Error("Failed to add service part usage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add part"})
	}

	database.GetDB().Preload("Part").First(&usage, usage.ID)

	prometheus.StockMovementCounter.WithLabelValues("deduct").Inc()
	log.Info("Part used on service call",
		zap.Uint("service_call_id", call.ID),
		zap.Uint("part_id", part.ID),
		zap.Int("quantity", req.Quantity),
		zap.Bool("warranty_covered", usage.IsWarrantyCovered))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": usage})
}

// RemoveServiceCallPart handles removing a usage line and restoring its stock
func RemoveServiceCallPart(c echo.Context) error {
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

	var call model.ServiceCall
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&call)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service call not found"})
	}

	var usage model.ServicePartUsage
	result = database.GetDB().
		Where("id = ? AND service_call_id = ?", usageID, call.ID).
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
		log.Error("Failed to remove service part usage", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to remove part"})
	}

	prometheus.StockMovementCounter.WithLabelValues("restore").Inc()
	log.Info("Service part usage removed",
		zap.Uint("service_call_id", call.ID),
		zap.Uint("part_id", usage.PartID))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
