package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// InspectionRequest defines the structure for inspection creation requests
type InspectionRequest struct {
	AssetID        uint   `json:"asset_id"`
	InspectionDate string `json:"inspection_date"`
	NextDueDate    string `json:"next_due_date"`
	InspectionBody string `json:"inspection_body"`
	InspectorName  string `json:"inspector_name"`
	Result         string `json:"result"`
	Deficiencies   string `json:"deficiencies"`
	Notes          string `json:"notes"`
}

// ListInspections handles retrieving all inspections, optionally by asset
func ListInspections(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	query := database.GetDB().Where("organization_id = ?", sess.OrgID)
	if assetID := c.QueryParam("assetId"); assetID != "" {
		query = query.Where("asset_id = ?", assetID)
	}

	var inspections []model.Inspection
	result := query.
		Preload("Asset").
		Preload("Asset.Customer").
		Order("inspection_date DESC").
		Find(&inspections)
	if result.Error != nil {
		log.Error("Failed to list inspections", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve inspections"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": inspections})
}

// CreateInspection handles recording an inspection. The cabin label color is
// derived from the result and mirrored onto the asset together with the next
// due date.
func CreateInspection(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req InspectionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.AssetID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "asset_id is required"})
	}
	if req.Result == "" {
		req.Result = model.ResultNoDefect
	}
	if !model.ValidInspectionResult(req.Result) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inspection result"})
	}

	var asset model.Asset
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", req.AssetID, sess.OrgID).
		First(&asset)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
	}

	inspectionDate, err := parseTime(req.InspectionDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if inspectionDate == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "inspection_date is required"})
	}
	nextDueDate, err := parseTime(req.NextDueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if nextDueDate == nil {
		// Annual inspections default to one year out
		due := inspectionDate.AddDate(1, 0, 0)
		nextDueDate = &due
	}

	label := model.LabelForResult(req.Result)
	inspection := model.Inspection{
		OrganizationID: sess.OrgID,
		AssetID:        req.AssetID,
		InspectionDate: *inspectionDate,
		NextDueDate:    *nextDueDate,
		InspectionBody: req.InspectionBody,
		InspectorName:  req.InspectorName,
		Result:         req.Result,
		Label:          label,
		Deficiencies:   req.Deficiencies,
		Notes:          req.Notes,
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inspection).Error; err != nil {
			return err
		}
		return tx.Model(&model.Asset{}).
			Where("id = ?", asset.ID).
			Updates(map[string]interface{}{
				"inspection_label":   label,
				"last_inspection_at": *inspectionDate,
				"next_inspection_at": *nextDueDate,
			}).Error
	})
	if err != nil {
		log.Error("Failed to create inspection", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create inspection"})
	}

	database.GetDB().Preload("Asset").First(&inspection, inspection.ID)

	log.Info("Inspection recorded",
		zap.Uint("inspection_id", inspection.ID),
		zap.Uint("asset_id", inspection.AssetID),
		zap.String("result", inspection.Result),
		zap.String("label", label))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": inspection})
}
