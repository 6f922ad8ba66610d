package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
)

// GetEntitlements returns the derived read/write permissions for the
// caller's organization based on its plan and trial expiry.
func GetEntitlements(c echo.Context) error {
	sess := session(c)

	var org model.Organization
	if result := database.GetDB().First(&org, sess.OrgID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "organization not found"})
	}

	now := time.Now()
	isTrial := org.PlanTier == model.PlanTrial
	isExpired := isTrial && org.TrialEndsAt.Before(now)

	return c.JSON(http.StatusOK, echo.Map{
		"ok": true,
		"ent": map[string]interface{}{
			"plan_tier":     org.PlanTier,
			"is_trial":      isTrial,
			"is_expired":    isExpired,
			"can_write":     !isExpired,
			"can_export":    !isExpired,
			"trial_ends_at": org.TrialEndsAt,
			"days_left":     model.TrialDaysLeft(org.TrialEndsAt, now),
		},
	})
}
