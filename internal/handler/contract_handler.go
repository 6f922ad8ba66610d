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

// ContractRequest defines the structure for contract creation requests.
// MonthlyFee is integer minor-currency units.
type ContractRequest struct {
	CustomerID          uint   `json:"customer_id"`
	ContractNumber      string `json:"contract_number"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	AutoRenew           *bool  `json:"auto_renew"`
	MonthlyFee          int64  `json:"monthly_fee"`
	Status              string `json:"status"`
	TechnicianName      string `json:"technician_name"`
	TechnicianCert      string `json:"technician_cert"`
	HasEncryptionDevice bool   `json:"has_encryption_device"`
	EncryptionNote      string `json:"encryption_note"`
	Notes               string `json:"notes"`
	AssetIDs            []uint `json:"asset_ids"`
}

// ListContracts handles retrieving all contracts of the organization
func ListContracts(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	query := database.GetDB().Where("organization_id = ?", sess.OrgID)
	if customerID := c.QueryParam("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var contracts []model.Contract
	result := query.
		Preload("Customer").
		Preload("Assets.Asset").
		Order("created_at DESC").
		Find(&contracts)
	if result.Error != nil {
		log.Error("Failed to list contracts", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve contracts"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": contracts})
}

// CreateContract handles creating a contract together with its covered assets
func CreateContract(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req ContractRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.CustomerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id is required"})
	}
	if req.Status == "" {
		req.Status = model.ContractDraft
	}
	if !model.ValidContractStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract status"})
	}
	if req.MonthlyFee < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "monthly_fee must not be negative"})
	}

	var customer model.Customer
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", req.CustomerID, sess.OrgID).
		First(&customer)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	startDate, err := parseTime(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if startDate == nil {
		now := time.Now()
		startDate = &now
	}
	endDate, err := parseTime(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// Covered assets must belong to the same org
	if len(req.AssetIDs) > 0 {
		var count int64
		database.GetDB().Model(&model.Asset{}).
			Where("id IN ? AND organization_id = ?", req.AssetIDs, sess.OrgID).
			Count(&count)
		if count != int64(len(req.AssetIDs)) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
		}
	}

	autoRenew := true
	if req.AutoRenew != nil {
		autoRenew = *req.AutoRenew
	}

	contract := model.Contract{
		OrganizationID:      sess.OrgID,
		CustomerID:          req.CustomerID,
		ContractNumber:      req.ContractNumber,
		StartDate:           *startDate,
		EndDate:             endDate,
		AutoRenew:           autoRenew,
		MonthlyFee:          req.MonthlyFee,
		Status:              req.Status,
		TechnicianName:      req.TechnicianName,
		TechnicianCert:      req.TechnicianCert,
		HasEncryptionDevice: req.HasEncryptionDevice,
		EncryptionNote:      req.EncryptionNote,
		Notes:               req.Notes,
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&contract).Error; err != nil {
			return err
		}
		for _, assetID := range req.AssetIDs {
			link := model.ContractAsset{ContractID: contract.ID, AssetID: assetID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("Failed to create contract", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create contract"})
	}

	database.GetDB().
		Preload("Customer").
		Preload("Assets.Asset").
		First(&contract, contract.ID)

	log.Info("Contract created",
		zap.Uint("contract_id", contract.ID),
		zap.Uint("customer_id", contract.CustomerID),
		zap.Int("covered_assets", len(req.AssetIDs)))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": contract})
}

// GetContract handles retrieving a single contract with its covered assets
func GetContract(c echo.Context) error {
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var contract model.Contract
	result := database.GetDB().
		Preload("Customer").
		Preload("Assets.Asset").
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&contract)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": contract})
}

// UpdateContract handles partially updating a contract
func UpdateContract(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var contract model.Contract
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&contract)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
	}

	var req struct {
		Status         *string `json:"status"`
		ContractNumber *string `json:"contract_number"`
		EndDate        *string `json:"end_date"`
		AutoRenew      *bool   `json:"auto_renew"`
		MonthlyFee     *int64  `json:"monthly_fee"`
		TechnicianName *string `json:"technician_name"`
		TechnicianCert *string `json:"technician_cert"`
		Notes          *string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		if !model.ValidContractStatus(*req.Status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract status"})
		}
		updates["status"] = *req.Status
	}
	if req.ContractNumber != nil {
		updates["contract_number"] = *req.ContractNumber
	}
	if req.EndDate != nil {
		t, err := parseTime(*req.EndDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		updates["end_date"] = t
	}
	if req.AutoRenew != nil {
		updates["auto_renew"] = *req.AutoRenew
	}
	if req.MonthlyFee != nil {
		if *req.MonthlyFee < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "monthly_fee must not be negative"})
		}
		updates["monthly_fee"] = *req.MonthlyFee
	}
	if req.TechnicianName != nil {
		updates["technician_name"] = *req.TechnicianName
	}
	if req.TechnicianCert != nil {
		updates["technician_cert"] = *req.TechnicianCert
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if result := database.GetDB().Model(&contract).Updates(updates); result.Error != nil {
			log.Error("Failed to update contract", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update contract"})
		}
	}

	database.GetDB().
		Preload("Customer").
		Preload("Assets.Asset").
		First(&contract, contract.ID)
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": contract})
}
