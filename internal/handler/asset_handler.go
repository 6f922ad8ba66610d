package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// AssetRequest defines the structure for asset creation requests
type AssetRequest struct {
	CustomerID      uint   `json:"customer_id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	SerialNumber    string `json:"serial_number"`
	ElevatorIDNo    string `json:"elevator_id_no"`
	LocationNote    string `json:"location_note"`
	BuildingName    string `json:"building_name"`
	DoorNumber      string `json:"door_number"`
	Stops           int    `json:"stops"`
	CapacityKg      int    `json:"capacity_kg"`
	ControllerBrand string `json:"controller_brand"`
	InstallYear     int    `json:"install_year"`
	RiskScore       int    `json:"risk_score"`
}

// ListAssets handles retrieving all assets, optionally filtered by customer
func ListAssets(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	query := database.GetDB().Where("organization_id = ?", sess.OrgID)
	if customerID := c.QueryParam("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var assets []model.Asset
	result := query.Preload("Customer").Order("created_at DESC").Find(&assets)
	if result.Error != nil {
		log.Error("Failed to list assets", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve assets"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": assets})
}

// CreateAsset handles creating a new asset under a customer of the same org
func CreateAsset(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req AssetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.CustomerID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id and name are required"})
	}
	if req.RiskScore < 0 || req.RiskScore > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "risk_score must be between 0 and 100"})
	}

	// Verify customer belongs to org
	var customer model.Customer
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", req.CustomerID, sess.OrgID).
		First(&customer)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	asset := model.Asset{
		OrganizationID:  sess.OrgID,
		CustomerID:      req.CustomerID,
		Name:            req.Name,
		Category:        req.Category,
		SerialNumber:    req.SerialNumber,
		ElevatorIDNo:    req.ElevatorIDNo,
		LocationNote:    req.LocationNote,
		BuildingName:    req.BuildingName,
		DoorNumber:      req.DoorNumber,
		Stops:           req.Stops,
		CapacityKg:      req.CapacityKg,
		ControllerBrand: req.ControllerBrand,
		InstallYear:     req.InstallYear,
		RiskScore:       req.RiskScore,
	}

	if result := database.GetDB().Create(&asset); result.Error != nil {
		log.Error("Failed to create asset", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create asset"})
	}

	database.GetDB().Preload("Customer").First(&asset, asset.ID)

	log.Info("Asset created",
		zap.Uint("asset_id", asset.ID),
		zap.Uint("customer_id", asset.CustomerID),
		zap.String("name", asset.Name))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": asset})
}

// GetAsset handles retrieving a single asset by ID
func GetAsset(c echo.Context) error {
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var asset model.Asset
	result := database.GetDB().
		Preload("Customer").
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&asset)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": asset})
}

// UpdateAsset handles partially updating an asset
func UpdateAsset(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var asset model.Asset
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&asset)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
	}

	var req map[string]interface{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	for key, column := range map[string]string{
		"name":             "name",
		"category":         "category",
		"serial_number":    "serial_number",
		"elevator_id_no":   "elevator_id_no",
		"location_note":    "location_note",
		"building_name":    "building_name",
		"door_number":      "door_number",
		"stops":            "stops",
		"capacity_kg":      "capacity_kg",
		"controller_brand": "controller_brand",
		"install_year":     "install_year",
		"risk_score":       "risk_score",
	} {
		if v, ok := req[key]; ok {
			updates[column] = v
		}
	}
	if score, ok := updates["risk_score"].(float64); ok && (score < 0 || score > 100) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "risk_score must be between 0 and 100"})
	}

	if len(updates) > 0 {
		if result := database.GetDB().Model(&asset).Updates(updates); result.Error != nil {
			log.Error("Failed to update asset", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update asset"})
		}
	}

	database.GetDB().Preload("Customer").First(&asset, asset.ID)
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": asset})
}

// DeleteAsset handles deleting an asset. Blocked while work orders still
// reference it.
func DeleteAsset(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var asset model.Asset
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&asset)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
	}

	var woCount int64
	database.GetDB().Model(&model.WorkOrder{}).Where("asset_id = ?", id).Count(&woCount)
	if woCount > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": fmt.Sprintf("asset has %d work orders, remove or reassign them first", woCount),
		})
	}

	if result := database.GetDB().Delete(&asset); result.Error != nil {
		log.Error("Failed to delete asset", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete asset"})
	}

	log.Info("Asset deleted", zap.Uint("asset_id", id))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
