package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// EntitlementMiddleware blocks mutating requests from organizations whose
// trial has expired. Reads pass so an expired tenant can still see its data.
func EntitlementMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
				return next(c)
			}

			session := SessionFrom(c)
			if session == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			var org model.Organization
			if result := database.GetDB().First(&org, session.OrgID); result.Error != nil {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "organization not found"})
			}

			if org.PlanTier == model.PlanTrial && org.TrialEndsAt.Before(time.Now()) {
				logger.FromContext(c).Warn("Write blocked, trial expired",
					zap.Uint("org_id", org.ID),
					zap.Time("trial_ends_at", org.TrialEndsAt))
				return c.JSON(http.StatusForbidden, echo.Map{"error": "trial expired, upgrade to continue making changes"})
			}

			return next(c)
		}
	}
}
