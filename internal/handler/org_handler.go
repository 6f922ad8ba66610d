package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// GetOrg returns the caller's organization
func GetOrg(c echo.Context) error {
	sess := session(c)

	var org model.Organization
	if result := database.GetDB().First(&org, sess.OrgID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "organization not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "org": org})
}

// UpdateOrg updates organization settings. OWNER and ADMIN only.
func UpdateOrg(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	if sess.Role != model.RoleOwner && sess.Role != model.RoleAdmin {
		log.Warn("Org update forbidden", zap.String("role", sess.Role))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions"})
	}

	var req struct {
		Name     string `json:"name"`
		Vertical string `json:"vertical"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Vertical != "" && req.Vertical != model.VerticalElevator && req.Vertical != model.VerticalWhiteGoods {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vertical"})
	}

	var org model.Organization
	if result := database.GetDB().First(&org, sess.OrgID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "organization not found"})
	}

	if req.Name != "" {
		org.Name = req.Name
	}
	if req.Vertical != "" {
		org.Vertical = req.Vertical
	}

	if result := database.GetDB().Save(&org); result.Error != nil {
		log.Error("Failed to update organization", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update organization"})
	}

	log.Info("Organization updated", zap.Uint("org_id", org.ID))
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "org": org})
}
