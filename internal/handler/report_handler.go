package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// ExportWorkOrders handles streaming the organization's work orders as CSV.
// Export is an entitlement of active tenants; expired trials are refused.
func ExportWorkOrders(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var org model.Organization
	if result := database.GetDB().First(&org, sess.OrgID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "organization not found"})
	}
	if org.PlanTier == model.PlanTrial && org.TrialEndsAt.Before(time.Now()) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "trial expired, export is not available"})
	}

	var orders []model.WorkOrder
	result := database.GetDB().
		Preload("Customer").
		Preload("Technician").
		Where("organization_id = ?", sess.OrgID).
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		log.Error("Failed to export work orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to export work orders"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="work-orders-%s.csv"`, time.Now().Format("2006-01-02")))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	header := []string{"code", "type", "status", "priority", "customer", "technician",
		"labor_cost", "service_fee", "scheduled_at", "completed_at", "created_at"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, order := range orders {
		technician := ""
		if order.Technician != nil {
			technician = order.Technician.Name
		}
		scheduled := ""
		if order.ScheduledAt != nil {
			scheduled = order.ScheduledAt.Format(time.RFC3339)
		}
		completed := ""
		if order.CompletedAt != nil {
			completed = order.CompletedAt.Format(time.RFC3339)
		}
		record := []string{
			order.Code,
			order.Type,
			order.Status,
			order.Priority,
			order.Customer.Name,
			technician,
			fmt.Sprintf("%d", order.LaborCost),
			fmt.Sprintf("%d", order.ServiceFee),
			scheduled,
			completed,
			order.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
