package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// TechnicianRequest defines the structure for technician creation requests
type TechnicianRequest struct {
	Name          string `json:"name"`
	Initials      string `json:"initials"`
	Phone         string `json:"phone"`
	Zone          string `json:"zone"`
	Certification string `json:"certification"`
	Status        string `json:"status"`
}

// ListTechnicians handles retrieving all technicians of the organization
func ListTechnicians(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var technicians []model.Technician
	result := database.GetDB().
		Where("organization_id = ?", sess.OrgID).
		Order("name ASC").
		Find(&technicians)
	if result.Error != nil {
		log.Error("Failed to list technicians", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve technicians"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": technicians})
}

// CreateTechnician handles creating a new technician
func CreateTechnician(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req TechnicianRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if len(req.Initials) > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "initials must be at most 5 characters"})
	}

	technician := model.Technician{
		OrganizationID: sess.OrgID,
		Name:           req.Name,
		Initials:       req.Initials,
		Phone:          req.Phone,
		Zone:           req.Zone,
		Certification:  req.Certification,
		Status:         req.Status,
	}

	if result := database.GetDB().Create(&technician); result.Error != nil {
		log.Error("Failed to create technician", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create technician"})
	}

	log.Info("Technician created",
		zap.Uint("technician_id", technician.ID),
		zap.String("name", technician.Name))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": technician})
}
