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

// GetDashboard handles the aggregate overview screen: entity counts, overdue
// maintenance, upcoming inspections and recent activity.
func GetDashboard(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	db := database.GetDB()
	now := time.Now()

	counts := map[string]int64{}
	for name, m := range map[string]interface{}{
		"customers":   &model.Customer{},
		"assets":      &model.Asset{},
		"devices":     &model.Device{},
		"technicians": &model.Technician{},
		"contracts":   &model.Contract{},
	} {
		var n int64
		if result := db.Model(m).Where("organization_id = ?", sess.OrgID).Count(&n); result.Error != nil {
			log.Error("Failed to count dashboard entities", zap.String("entity", name), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build dashboard"})
		}
		counts[name] = n
	}

	var openWorkOrders int64
	db.Model(&model.WorkOrder{}).
		Where("organization_id = ? AND status NOT IN ?", sess.OrgID,
			[]string{model.WorkOrderDone, model.WorkOrderCanceled}).
		Count(&openWorkOrders)
	counts["open_work_orders"] = openWorkOrders

	var openServiceCalls int64
	db.Model(&model.ServiceCall{}).
		Where("organization_id = ? AND status NOT IN ?", sess.OrgID,
			[]string{model.CallCompleted, model.CallCanceled, model.CallCannotRepair}).
		Count(&openServiceCalls)
	counts["open_service_calls"] = openServiceCalls

	var urgentWorkOrders int64
	db.Model(&model.WorkOrder{}).
		Where("organization_id = ? AND status = ?", sess.OrgID, model.WorkOrderUrgent).
		Count(&urgentWorkOrders)
	counts["urgent_work_orders"] = urgentWorkOrders

	var plansDueSoon int64
	db.Model(&model.MaintenancePlan{}).
		Where("organization_id = ? AND next_due_at BETWEEN ? AND ?",
			sess.OrgID, now, now.AddDate(0, 0, 7)).
		Count(&plansDueSoon)
	counts["plans_due_week"] = plansDueSoon

	var overduePlanCount int64
	db.Model(&model.MaintenancePlan{}).
		Where("organization_id = ? AND next_due_at < ?", sess.OrgID, now).
		Count(&overduePlanCount)
	counts["overdue_plans"] = overduePlanCount

	var riskyAssets int64
	db.Model(&model.Asset{}).
		Where("organization_id = ? AND risk_score >= ?", sess.OrgID, 60).
		Count(&riskyAssets)
	counts["risky_assets"] = riskyAssets

	var lowStockParts int64
	db.Model(&model.Part{}).
		Where("organization_id = ? AND stock <= min_stock", sess.OrgID).
		Count(&lowStockParts)
	counts["low_stock_parts"] = lowStockParts

	var unpaidInvoices int64
	db.Model(&model.Invoice{}).
		Where("organization_id = ? AND status IN ?", sess.OrgID,
			[]string{model.InvoiceDraft, model.InvoiceSent}).
		Count(&unpaidInvoices)
	counts["unpaid_invoices"] = unpaidInvoices

	var overduePlans []model.MaintenancePlan
	db.Preload("Asset").Preload("Asset.Customer").
		Where("organization_id = ? AND next_due_at < ?", sess.OrgID, now).
		Order("next_due_at ASC").
		Limit(10).
		Find(&overduePlans)

	var upcomingPlans []model.MaintenancePlan
	db.Preload("Asset").Preload("Asset.Customer").
		Where("organization_id = ? AND next_due_at BETWEEN ? AND ?",
			sess.OrgID, now, now.AddDate(0, 0, 60)).
		Order("next_due_at ASC").
		Limit(10).
		Find(&upcomingPlans)

	var upcomingInspections []model.Inspection
	db.Preload("Asset").
		Where("organization_id = ? AND next_due_date BETWEEN ? AND ?",
			sess.OrgID, now, now.AddDate(0, 1, 0)).
		Order("next_due_date ASC").
		Limit(10).
		Find(&upcomingInspections)

	var recentWorkOrders []model.WorkOrder
	db.Preload("Customer").Preload("Technician").
		Where("organization_id = ?", sess.OrgID).
		Order("created_at DESC").
		Limit(10).
		Find(&recentWorkOrders)

	var breachedCalls []model.ServiceCall
	db.Preload("Customer").Preload("Device").
		Where("organization_id = ? AND received_at < ? AND status NOT IN ?",
			sess.OrgID, now.AddDate(0, 0, -model.LegalRepairDeadlineDays),
			[]string{model.CallCompleted, model.CallCanceled}).
		Order("received_at ASC").
		Limit(10).
		Find(&breachedCalls)

	return c.JSON(http.StatusOK, echo.Map{
		"ok":                   true,
		"counts":               counts,
		"overdue_plans":        overduePlans,
		"upcoming_plans":       upcomingPlans,
		"upcoming_inspections": upcomingInspections,
		"recent_work_orders":   recentWorkOrders,
		"deadline_breaches":    breachedCalls,
	})
}
