package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
	"github.com/ozgundoganbatuhan-lang/asansor/prometheus"
)

// ServiceCallRequest defines the structure for service call creation requests
type ServiceCallRequest struct {
	CustomerID       uint   `json:"customer_id"`
	DeviceID         uint   `json:"device_id"`
	TechnicianID     *uint  `json:"technician_id"`
	CallType         string `json:"call_type"`
	Priority         string `json:"priority"`
	WarrantyStatus   string `json:"warranty_status"`
	FaultDescription string `json:"fault_description"`
	FaultCode        string `json:"fault_code"`
	VisitType        string `json:"visit_type"`
	Address          string `json:"address"`
	ScheduledAt      string `json:"scheduled_at"`
	Notes            string `json:"notes"`
}

// serviceCallView wraps a call with its derived legal-deadline fields
type serviceCallView struct {
	model.ServiceCall
	DaysSinceReceived     int  `json:"days_since_received"`
	LegalDeadlineBreached bool `json:"legal_deadline_breached"`
}

func newServiceCallView(call model.ServiceCall, now time.Time) serviceCallView {
	return serviceCallView{
		ServiceCall:           call,
		DaysSinceReceived:     model.DaysSince(call.ReceivedAt, now),
		LegalDeadlineBreached: model.LegalDeadlineBreached(call.ReceivedAt, now, call.Status),
	}
}

func nextServiceCallCode(tx *gorm.DB, orgID uint) (string, error) {
	var count int64
	if result := tx.Unscoped().Model(&model.ServiceCall{}).Where("organization_id = ?", orgID).Count(&count); result.Error != nil {
		return "", result.Error
	}
	return fmt.Sprintf("SRV-%d-%04d", time.Now().Year(), count+1), nil
}

// ListServiceCalls handles retrieving all service calls with deadline tracking
func ListServiceCalls(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	query := database.GetDB().Where("organization_id = ?", sess.OrgID)
	if customerID := c.QueryParam("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if deviceID := c.QueryParam("deviceId"); deviceID != "" {
		query = query.Where("device_id = ?", deviceID)
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var calls []model.ServiceCall
	result := query.
		Preload("Customer").
		Preload("Device").
		Preload("Device.Brand").
		Preload("Technician").
		Preload("PartsUsed.Part").
		Preload("Invoice").
		Order("created_at DESC").
		Find(&calls)
	if result.Error != nil {
		log.Error("Failed to list service calls", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve service calls"})
	}

	now := time.Now()
	items := make([]serviceCallView, 0, len(calls))
	for _, call := range calls {
		items = append(items, newServiceCallView(call, now))
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": items})
}

// CreateServiceCall handles opening a new service call. The device is flagged
// as under repair until the call is closed.
func CreateServiceCall(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req ServiceCallRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.CustomerID == 0 || req.DeviceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id and device_id are required"})
	}
	if req.CallType == "" {
		req.CallType = model.CallFaultRepair
	}
	if !model.ValidServiceCallType(req.CallType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid call type"})
	}
	if req.Priority == "" {
		req.Priority = model.PriorityNormal
	}
	if req.VisitType == "" {
		req.VisitType = model.VisitHome
	}
	if req.WarrantyStatus == "" {
		req.WarrantyStatus = model.WarrantyUnknown
	}
	scheduledAt, err := parseTime(req.ScheduledAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var customer model.Customer
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", req.CustomerID, sess.OrgID).
		First(&customer)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	var device model.Device
	result = database.GetDB().
		Where("id = ? AND organization_id = ?", req.DeviceID, sess.OrgID).
		First(&device)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "device not found"})
	}

	now := time.Now()
	call := model.ServiceCall{
		OrganizationID:   sess.OrgID,
		CustomerID:       req.CustomerID,
		DeviceID:         req.DeviceID,
		TechnicianID:     req.TechnicianID,
		CallType:         req.CallType,
		Status:           model.CallReceived,
		Priority:         req.Priority,
		WarrantyStatus:   req.WarrantyStatus,
		IsUnderWarranty:  req.WarrantyStatus == model.InWarranty || req.WarrantyStatus == model.ExtendedWarrantyS,
		FaultDescription: req.FaultDescription,
		FaultCode:        req.FaultCode,
		VisitType:        req.VisitType,
		Address:          req.Address,
		ReceivedAt:       now,
		ScheduledAt:      scheduledAt,
		Notes:            req.Notes,
	}

	err = withCodeRetry(func() error {
		return database.GetDB().Transaction(func(tx *gorm.DB) error {
			code, err := nextServiceCallCode(tx, sess.OrgID)
			if err != nil {
				return err
			}
			call.Code = code
			if err := tx.Create(&call).Error; err != nil {
				return err
			}
			return tx.Model(&model.Device{}).
				Where("id = ?", device.ID).
				Update("is_under_repair", true).Error
		})
	})
	if err != nil {
		log.Error("Failed to create service call", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create service call"})
	}

	database.GetDB().
		Preload("Customer").
		Preload("Device").
		Preload("Technician").
		First(&call, call.ID)

	prometheus.ServiceCallCounter.WithLabelValues("create").Inc()
	log.Info("Service call created",
		zap.Uint("service_call_id", call.ID),
		zap.String("code", call.Code),
		zap.String("call_type", call.CallType))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": call})
}

// GetServiceCall handles retrieving a single service call with its relations
func GetServiceCall(c echo.Context) error {
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var call model.ServiceCall
	result := database.GetDB().
		Preload("Customer").
		Preload("Device").
		Preload("Device.Brand").
		Preload("Technician").
		Preload("PartsUsed.Part").
		Preload("Invoice").
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&call)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service call not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": newServiceCallView(call, time.Now())})
}

// UpdateServiceCall handles partially updating a service call. Moving the
// status to COMPLETED stamps the completion time, records the working days
// used against the legal deadline and releases the device.
func UpdateServiceCall(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var call model.ServiceCall
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&call)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service call not found"})
	}

	var req struct {
		Status            *string `json:"status"`
		TechnicianID      *uint   `json:"technician_id"`
		Priority          *string `json:"priority"`
		WarrantyStatus    *string `json:"warranty_status"`
		IsWarrantyCovered *bool   `json:"is_warranty_covered"`
		FaultDiagnosis    *string `json:"fault_diagnosis"`
		FaultCode         *string `json:"fault_code"`
		RepairDescription *string `json:"repair_description"`
		VisitType         *string `json:"visit_type"`
		Address           *string `json:"address"`
		ScheduledAt       *string `json:"scheduled_at"`
		LaborCost         *int64  `json:"labor_cost"`
		TransportCost     *int64  `json:"transport_cost"`
		DiagnosticFee     *int64  `json:"diagnostic_fee"`
		CustomerInformed  *bool   `json:"customer_informed"`
		RightToReplace    *bool   `json:"right_to_replace"`
		RightToRefund     *bool   `json:"right_to_refund"`
		Notes             *string `json:"notes"`
		InternalNotes     *string `json:"internal_notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		if !model.ValidServiceCallStatus(*req.Status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service call status"})
		}
		updates["status"] = *req.Status
	}
	if req.TechnicianID != nil {
		updates["technician_id"] = *req.TechnicianID
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.WarrantyStatus != nil {
		updates["warranty_status"] = *req.WarrantyStatus
		updates["is_under_warranty"] = *req.WarrantyStatus == model.InWarranty || *req.WarrantyStatus == model.ExtendedWarrantyS
	}
	if req.IsWarrantyCovered != nil {
		updates["is_warranty_covered"] = *req.IsWarrantyCovered
	}
	if req.FaultDiagnosis != nil {
		updates["fault_diagnosis"] = *req.FaultDiagnosis
	}
	if req.FaultCode != nil {
		updates["fault_code"] = *req.FaultCode
	}
	if req.RepairDescription != nil {
		updates["repair_description"] = *req.RepairDescription
	}
	if req.VisitType != nil {
		updates["visit_type"] = *req.VisitType
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.ScheduledAt != nil {
		t, err := parseTime(*req.ScheduledAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		updates["scheduled_at"] = t
	}
	if req.LaborCost != nil {
		updates["labor_cost"] = *req.LaborCost
	}
	if req.TransportCost != nil {
		updates["transport_cost"] = *req.TransportCost
	}
	if req.DiagnosticFee != nil {
		updates["diagnostic_fee"] = *req.DiagnosticFee
	}
	if req.CustomerInformed != nil {
		updates["customer_informed"] = *req.CustomerInformed
	}
	if req.RightToReplace != nil {
		updates["right_to_replace"] = *req.RightToReplace
	}
	if req.RightToRefund != nil {
		updates["right_to_refund"] = *req.RightToRefund
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.InternalNotes != nil {
		updates["internal_notes"] = *req.InternalNotes
	}

	now := time.Now()
	completing := req.Status != nil && *req.Status == model.CallCompleted && call.Status != model.CallCompleted
	closing := req.Status != nil && (*req.Status == model.CallCompleted ||
		*req.Status == model.CallCanceled || *req.Status == model.CallCannotRepair)
	if completing {
		updates["completed_at"] = now
		updates["working_days_used"] = model.DaysSince(call.ReceivedAt, now)
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&call).Updates(updates).Error; err != nil {
				return err
			}
		}
		if completing {
			if err := tx.Model(&model.Device{}).
				Where("id = ?", call.DeviceID).
				Updates(map[string]interface{}{
					"last_service_at":     now,
					"total_service_count": gorm.Expr("total_service_count + 1"),
				}).Error; err != nil {
				return err
			}
		}
		if closing {
			return tx.Model(&model.Device{}).
				Where("id = ?", call.DeviceID).
				Update("is_under_repair", false).Error
		}
		return nil
	})
	if err != nil {
		log.Error("Failed to update service call", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update service call"})
	}

	database.GetDB().
		Preload("Customer").
		Preload("Device").
		Preload("Technician").
		Preload("PartsUsed.Part").
		Preload("Invoice").
		First(&call, call.ID)

	prometheus.ServiceCallCounter.WithLabelValues("update").Inc()
	if completing {
		log.Info("Service call completed",
			zap.Uint("service_call_id", call.ID),
			zap.String("code", call.Code),
			zap.Intp("working_days_used", call.WorkingDaysUsed))
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": newServiceCallView(call, now)})
}
