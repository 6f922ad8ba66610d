package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// MaintenancePlanRequest defines the structure for plan creation requests
type MaintenancePlanRequest struct {
	AssetID      uint   `json:"asset_id"`
	ContractID   *uint  `json:"contract_id"`
	PeriodMonths int    `json:"period_months"`
	NextDueAt    string `json:"next_due_at"`
	Notes        string `json:"notes"`
}

// ListMaintenancePlans handles retrieving all plans ordered by due date
func ListMaintenancePlans(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	query := database.GetDB().Where("organization_id = ?", sess.OrgID)
	if assetID := c.QueryParam("assetId"); assetID != "" {
		query = query.Where("asset_id = ?", assetID)
	}

	var plans []model.MaintenancePlan
	result := query.
		Preload("Asset").
		Preload("Asset.Customer").
		Order("next_due_at ASC").
		Find(&plans)
	if result.Error != nil {
		log.Error("Failed to list maintenance plans", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve maintenance plans"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": plans})
}

// CreateMaintenancePlan handles creating a recurring maintenance plan.
// Without an explicit due date the first cycle starts one period from now.
func CreateMaintenancePlan(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req MaintenancePlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.AssetID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "asset_id is required"})
	}
	if req.PeriodMonths == 0 {
		req.PeriodMonths = 1
	}
	if req.PeriodMonths < 1 || req.PeriodMonths > 24 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "period_months must be between 1 and 24"})
	}

	var asset model.Asset
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", req.AssetID, sess.OrgID).
		First(&asset)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
	}

	if req.ContractID != nil {
		var contract model.Contract
		result := database.GetDB().
			Where("id = ? AND organization_id = ?", *req.ContractID, sess.OrgID).
			First(&contract)
		if result.Error != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
		}
	}

	nextDue, err := parseTime(req.NextDueAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if nextDue == nil {
		due := model.NextDue(time.Now(), req.PeriodMonths)
		nextDue = &due
	}

	plan := model.MaintenancePlan{
		OrganizationID: sess.OrgID,
		AssetID:        req.AssetID,
		ContractID:     req.ContractID,
		PeriodMonths:   req.PeriodMonths,
		NextDueAt:      *nextDue,
		Notes:          req.Notes,
	}

	if result := database.GetDB().Create(&plan); result.Error != nil {
		log.Error("Failed to create maintenance plan", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create maintenance plan"})
	}

	database.GetDB().Preload("Asset").First(&plan, plan.ID)

	log.Info("Maintenance plan created",
		zap.Uint("plan_id", plan.ID),
		zap.Uint("asset_id", plan.AssetID),
		zap.Int("period_months", plan.PeriodMonths))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": plan})
}

// UpdateMaintenancePlan handles partially updating a plan. The mark_done
// action stamps the completion, rolls the due date forward by the period and
// records the maintenance on the asset.
func UpdateMaintenancePlan(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var plan model.MaintenancePlan
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&plan)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "maintenance plan not found"})
	}

	var req struct {
		MarkDone     bool    `json:"mark_done"`
		PeriodMonths *int    `json:"period_months"`
		NextDueAt    *string `json:"next_due_at"`
		Notes        *string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.MarkDone {
		now := time.Now()
		err := database.GetDB().Transaction(func(tx *gorm.DB) error {
			updates := map[string]interface{}{
				"last_done_at": now,
				"next_due_at":  model.NextDue(now, plan.PeriodMonths),
			}
			if err := tx.Model(&plan).Updates(updates).Error; err != nil {
				return err
			}
			return tx.Model(&model.Asset{}).
				Where("id = ?", plan.AssetID).
				Update("last_maintenance_at", now).Error
		})
		if err != nil {
			log.Error("Failed to mark maintenance done", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update maintenance plan"})
		}

		database.GetDB().Preload("Asset").First(&plan, plan.ID)
		log.Info("Maintenance marked done",
			zap.Uint("plan_id", plan.ID),
			zap.Time("next_due_at", plan.NextDueAt))
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": plan})
	}

	updates := map[string]interface{}{}
	if req.PeriodMonths != nil {
		if *req.PeriodMonths < 1 || *req.PeriodMonths > 24 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "period_months must be between 1 and 24"})
		}
		updates["period_months"] = *req.PeriodMonths
	}
	if req.NextDueAt != nil {
		t, err := parseTime(*req.NextDueAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if t != nil {
			updates["next_due_at"] = *t
		}
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if result := database.GetDB().Model(&plan).Updates(updates); result.Error != nil {
			log.Error("Failed to update maintenance plan", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update maintenance plan"})
		}
	}

	database.GetDB().Preload("Asset").First(&plan, plan.ID)
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": plan})
}

// DeleteMaintenancePlan handles deleting a plan (soft delete)
func DeleteMaintenancePlan(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var plan model.MaintenancePlan
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&plan)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "maintenance plan not found"})
	}

	if result := database.GetDB().Delete(&plan); result.Error != nil {
		log.Error("Failed to delete maintenance plan", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete maintenance plan"})
	}

	log.Info("Maintenance plan deleted", zap.Uint("plan_id", id))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
