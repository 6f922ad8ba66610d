package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// PurchaseRequestRequest defines the structure for upgrade-interest requests
type PurchaseRequestRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	MonthlyJobs     int    `json:"monthly_jobs"`
	TechnicianCount int    `json:"technician_count"`
	City            string `json:"city"`
	Note            string `json:"note"`
}

// CreatePurchaseRequest handles capturing an upgrade-interest lead from a
// trial tenant. This endpoint stays writable after trial expiry.
func CreatePurchaseRequest(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req PurchaseRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.FullName == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name and phone are required"})
	}
	if !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}

	request := model.PurchaseRequest{
		OrganizationID:  sess.OrgID,
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		MonthlyJobs:     req.MonthlyJobs,
		TechnicianCount: req.TechnicianCount,
		City:            req.City,
		Note:            req.Note,
	}

	if result := database.GetDB().Create(&request); result.Error != nil {
		log.Error("Failed to create purchase request", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create purchase request"})
	}

	log.Info("Purchase request captured",
		zap.Uint("purchase_request_id", request.ID),
		zap.Uint("organization_id", sess.OrgID))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": request})
}
