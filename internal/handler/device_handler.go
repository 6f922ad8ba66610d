package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// DeviceRequest defines the structure for device creation requests
type DeviceRequest struct {
	CustomerID          uint   `json:"customer_id"`
	BrandID             *uint  `json:"brand_id"`
	Category            string `json:"category"`
	ModelName           string `json:"model_name"`
	ModelCode           string `json:"model_code"`
	SerialNumber        string `json:"serial_number"`
	ProductionYear      int    `json:"production_year"`
	Color               string `json:"color"`
	PurchaseDate        string `json:"purchase_date"`
	PurchasePlace       string `json:"purchase_place"`
	InvoiceNumber       string `json:"invoice_number"`
	InstallDate         string `json:"install_date"`
	LocationNote        string `json:"location_note"`
	WarrantyYears       int    `json:"warranty_years"`
	ExtendedWarranty    bool   `json:"extended_warranty"`
	ExtendedWarrantyEnd string `json:"extended_warranty_end"`
	PowerWatts          int    `json:"power_watts"`
	Voltage             string `json:"voltage"`
	Capacity            string `json:"capacity"`
	EnergyClass         string `json:"energy_class"`
	Notes               string `json:"notes"`
}

// deviceView wraps a device with its derived warranty fields for list screens
type deviceView struct {
	model.Device
	WarrantyActive   bool `json:"warranty_active"`
	WarrantyDaysLeft *int `json:"warranty_days_left"`
}

func newDeviceView(d model.Device, now time.Time) deviceView {
	view := deviceView{Device: d}
	if d.WarrantyEndDate != nil {
		view.WarrantyActive = d.WarrantyEndDate.After(now)
		days := model.WarrantyDaysLeft(*d.WarrantyEndDate, now)
		view.WarrantyDaysLeft = &days
	}
	return view
}

// ListDevices handles retrieving all devices with derived warranty status
func ListDevices(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	query := database.GetDB().Where("organization_id = ?", sess.OrgID)
	if customerID := c.QueryParam("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var devices []model.Device
	result := query.Preload("Customer").Preload("Brand").Order("created_at DESC").Find(&devices)
	if result.Error != nil {
		log.Error("Failed to list devices", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve devices"})
	}

	now := time.Now()
	items := make([]deviceView, 0, len(devices))
	for _, d := range devices {
		items = append(items, newDeviceView(d, now))
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": items})
}

// CreateDevice handles registering a new device. The warranty end date is
// derived from the purchase date and warranty years.
func CreateDevice(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req DeviceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.CustomerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id is required"})
	}
	if !model.ValidDeviceCategory(req.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid device category"})
	}

	// Verify customer belongs to org
	var customer model.Customer
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", req.CustomerID, sess.OrgID).
		First(&customer)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	if req.BrandID != nil {
		var brand model.Brand
		result := database.GetDB().
			Where("id = ? AND organization_id = ?", *req.BrandID, sess.OrgID).
			First(&brand)
		if result.Error != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
		}
	}

	purchaseDate, err := parseTime(req.PurchaseDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	installDate, err := parseTime(req.InstallDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	extendedEnd, err := parseTime(req.ExtendedWarrantyEnd)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	warrantyYears := req.WarrantyYears
	if warrantyYears == 0 {
		warrantyYears = 2
	}
	var warrantyEnd *time.Time
	if purchaseDate != nil {
		end := model.WarrantyEnd(*purchaseDate, warrantyYears)
		warrantyEnd = &end
	}

	device := model.Device{
		OrganizationID:      sess.OrgID,
		CustomerID:          req.CustomerID,
		BrandID:             req.BrandID,
		Category:            req.Category,
		ModelName:           req.ModelName,
		ModelCode:           req.ModelCode,
		SerialNumber:        req.SerialNumber,
		ProductionYear:      req.ProductionYear,
		Color:               req.Color,
		PurchaseDate:        purchaseDate,
		PurchasePlace:       req.PurchasePlace,
		InvoiceNumber:       req.InvoiceNumber,
		InstallDate:         installDate,
		LocationNote:        req.LocationNote,
		WarrantyYears:       warrantyYears,
		WarrantyEndDate:     warrantyEnd,
		ExtendedWarranty:    req.ExtendedWarranty,
		ExtendedWarrantyEnd: extendedEnd,
		PowerWatts:          req.PowerWatts,
		Voltage:             req.Voltage,
		Capacity:            req.Capacity,
		EnergyClass:         req.EnergyClass,
		Notes:               req.Notes,
	}

	if result := database.GetDB().Create(&device); result.Error != nil {
		log.Error("Failed to create device", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create device"})
	}

	database.GetDB().Preload("Customer").Preload("Brand").First(&device, device.ID)

	log.Info("Device created",
		zap.Uint("device_id", device.ID),
		zap.String("category", device.Category),
		zap.String("model", device.ModelName))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": device})
}

// GetDevice handles retrieving a single device with its recent service calls
func GetDevice(c echo.Context) error {
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var device model.Device
	result := database.GetDB().
		Preload("Customer").
		Preload("Brand").
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&device)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "device not found"})
	}

	var calls []model.ServiceCall
	database.GetDB().
		Preload("Technician").
		Where("device_id = ?", device.ID).
		Order("created_at DESC").
		Limit(20).
		Find(&calls)

	return c.JSON(http.StatusOK, echo.Map{
		"ok":            true,
		"item":          newDeviceView(device, time.Now()),
		"service_calls": calls,
	})
}

// UpdateDevice handles partially updating a device
func UpdateDevice(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var device model.Device
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&device)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "device not found"})
	}

	var req map[string]interface{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	for key, column := range map[string]string{
		"notes":           "notes",
		"location_note":   "location_note",
		"is_under_repair": "is_under_repair",
	} {
		if v, ok := req[key]; ok {
			updates[column] = v
		}
	}

	if len(updates) > 0 {
		if result := database.GetDB().Model(&device).Updates(updates); result.Error != nil {
			log.Error("Failed to update device", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update device"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": device})
}
