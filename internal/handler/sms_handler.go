package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
	"github.com/ozgundoganbatuhan-lang/asansor/prometheus"
)

// SMS notification types
const (
	SMSAssignment = "assignment"
	SMSReminder   = "reminder"
	SMSCompleted  = "completed"
	SMSCustom     = "custom"
)

// SMSRequest defines the structure for notification requests. Assignment and
// completion messages are templated from the work order; custom messages need
// an explicit phone and text.
type SMSRequest struct {
	Type        string `json:"type"`
	WorkOrderID uint   `json:"work_order_id"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
}

// SendSMS handles sending a notification through the SMS gateway
func SendSMS(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req SMSRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	var phone, message string
	switch req.Type {
	case SMSAssignment, SMSReminder, SMSCompleted:
		if req.WorkOrderID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "work_order_id is required"})
		}
		var order model.WorkOrder
		result := database.GetDB().
			Preload("Customer").
			Preload("Technician").
			Where("id = ? AND organization_id = ?", req.WorkOrderID, sess.OrgID).
			First(&order)
		if result.Error != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "work order not found"})
		}
		phone, message = buildWorkOrderSMS(req.Type, &order)
		if phone == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no phone number on record"})
		}
	case SMSCustom:
		if req.Phone == "" || req.Message == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone and message are required"})
		}
		phone, message = req.Phone, req.Message
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sms type"})
	}

	if err := smsClient.Send(c.Request().Context(), phone, message); err != nil {
		prometheus.SMSCounter.WithLabelValues(req.Type, "failed").Inc()
		log.Error("Failed to send SMS", zap.String("type", req.Type), zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}

	result := "sent"
	if smsClient.DemoMode() {
		result = "demo"
	}
	prometheus.SMSCounter.WithLabelValues(req.Type, result).Inc()
	log.Info("SMS sent",
		zap.String("type", req.Type),
		zap.Uint("work_order_id", req.WorkOrderID))
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "demo": smsClient.DemoMode()})
}

// buildWorkOrderSMS picks the recipient and renders the message body for a
// templated notification type.
func buildWorkOrderSMS(smsType string, order *model.WorkOrder) (phone, message string) {
	switch smsType {
	case SMSAssignment:
		if order.Technician != nil {
			phone = order.Technician.Phone
		}
		message = fmt.Sprintf("Yeni is emri atandi: %s - %s. Detaylar icin sisteme giris yapin.",
			order.Code, order.Customer.Name)
	case SMSReminder:
		phone = order.Customer.Phone
		when := ""
		if order.ScheduledAt != nil {
			when = order.ScheduledAt.Format("02.01.2006 15:04")
		}
		message = fmt.Sprintf("Sayin %s, %s tarihli bakim randevunuzu hatirlatiriz. Is emri: %s",
			order.Customer.Name, when, order.Code)
	case SMSCompleted:
		phone = order.Customer.Phone
		message = fmt.Sprintf("Sayin %s, %s numarali is emriniz tamamlanmistir. Bizi tercih ettiginiz icin tesekkur ederiz.",
			order.Customer.Name, order.Code)
	}
	return phone, message
}
