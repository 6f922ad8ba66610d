package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// CustomerRequest defines the structure for customer creation/update requests
type CustomerRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	TaxID       string `json:"tax_id"`
	Notes       string `json:"notes"`
}

// ListCustomers handles retrieving all customers of the organization
func ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var customers []model.Customer
	result := database.GetDB().
		Where("organization_id = ?", sess.OrgID).
		Order("created_at DESC").
		Find(&customers)
	if result.Error != nil {
		log.Error("Failed to list customers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve customers"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": customers})
}

// CreateCustomer handles creating a new customer
func CreateCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	customer := model.Customer{
		OrganizationID: sess.OrgID,
		Name:           req.Name,
		ContactName:    req.ContactName,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		TaxID:          req.TaxID,
		Notes:          req.Notes,
	}

	if result := database.GetDB().Create(&customer); result.Error != nil {
		log.Error("Failed to create customer", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create customer"})
	}

	log.Info("Customer created",
		zap.Uint("customer_id", customer.ID),
		zap.String("name", customer.Name))
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": customer})
}

// GetCustomer handles retrieving a single customer by ID
func GetCustomer(c echo.Context) error {
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var customer model.Customer
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&customer)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": customer})
}

// UpdateCustomer handles partially updating a customer
func UpdateCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var customer model.Customer
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&customer)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	var req map[string]interface{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	for key, column := range map[string]string{
		"name":         "name",
		"contact_name": "contact_name",
		"phone":        "phone",
		"email":        "email",
		"address":      "address",
		"tax_id":       "tax_id",
		"notes":        "notes",
	} {
		if v, ok := req[key]; ok {
			updates[column] = v
		}
	}
	if name, ok := updates["name"].(string); ok && name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must not be empty"})
	}

	if len(updates) > 0 {
		if result := database.GetDB().Model(&customer).Updates(updates); result.Error != nil {
			log.Error("Failed to update customer", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update customer"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": customer})
}

// DeleteCustomer handles deleting a customer (soft delete)
func DeleteCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var customer model.Customer
	result := database.GetDB().
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&customer)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	if result := database.GetDB().Delete(&customer); result.Error != nil {
		log.Error("Failed to delete customer", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete customer"})
	}

	log.Info("Customer deleted", zap.Uint("customer_id", id))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
