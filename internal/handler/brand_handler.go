package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// BrandRequest defines the structure for brand creation requests
type BrandRequest struct {
	Name          string `json:"name"`
	AuthCode      string `json:"auth_code"`
	AuthStartDate string `json:"auth_start_date"`
	AuthEndDate   string `json:"auth_end_date"`
	ContactName   string `json:"contact_name"`
	ContactPhone  string `json:"contact_phone"`
	ContactEmail  string `json:"contact_email"`
	Notes         string `json:"notes"`
}

// ListBrands handles retrieving all brands of the organization
func ListBrands(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var brands []model.Brand
	result := database.GetDB().
		Where("organization_id = ?", sess.OrgID).
		Order("name ASC").
		Find(&brands)
	if result.Error != nil {
		log.Error("Failed to list brands", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve brands"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": brands})
}

// CreateBrand handles creating a new brand
func CreateBrand(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	authStart, err := parseTime(req.AuthStartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	authEnd, err := parseTime(req.AuthEndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	brand := model.Brand{
		OrganizationID: sess.OrgID,
		Name:           req.Name,
		AuthCode:       req.AuthCode,
		AuthStartDate:  authStart,
		AuthEndDate:    authEnd,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		ContactEmail:   req.ContactEmail,
		Notes:          req.Notes,
	}

	if result := database.GetDB().Create(&brand); result.Error != nil {
		log.Error("Failed to create brand", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create brand"})
	}

	log.Info("Brand created", zap.Uint("brand_id", brand.ID), zap.String("name", brand.Name))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": brand})
}
