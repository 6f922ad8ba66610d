package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
)

func seedWorkOrderWithPart(t *testing.T, orgID uint, stock int) (model.WorkOrder, model.Part) {
	t.Helper()
	customer := seedCustomer(t, orgID, "Stok Müşterisi")

	order := model.WorkOrder{
		OrganizationID: orgID,
		CustomerID:     customer.ID,
		Code:           "WO-26-00001",
		Type:           model.WorkOrderFault,
		Status:         model.WorkOrderInProgress,
	}
	require.NoError(t, database.GetDB().Create(&order).Error)

	part := model.Part{
		OrganizationID: orgID,
		Name:           "Kapı Fişi",
		Price:          45000,
		Stock:          stock,
		MinStock:       1,
	}
	require.NoError(t, database.GetDB().Create(&part).Error)
	return order, part
}

func TestAddWorkOrderPartDeductsStock(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "stock-org")
	order, part := seedWorkOrderWithPart(t, org.ID, 5)

	body := fmt.Sprintf(`{"part_id":%d,"quantity":2}`, part.ID)
	rec := doRequest(t, AddWorkOrderPart, http.MethodPost, "/api/work-orders/1/parts", body, sess,
		map[string]string{"id": fmt.Sprint(order.ID)})
	require.Equal(t, http.StatusCreated, rec.Code)

	var updated model.Part
	require.NoError(t, database.GetDB().First(&updated, part.ID).Error)
	assert.Equal(t, 3, updated.Stock)

	var usages int64
	database.GetDB().Model(&model.PartUsage{}).Where("work_order_id = ?", order.ID).Count(&usages)
	assert.Equal(t, int64(1), usages)
}

func TestAddWorkOrderPartInsufficientStock(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "stock-org")
	order, part := seedWorkOrderWithPart(t, org.ID, 5)

	body := fmt.Sprintf(`{"part_id":%d,"quantity":10}`, part.ID)
	rec := doRequest(t, AddWorkOrderPart, http.MethodPost, "/api/work-orders/1/parts", body, sess,
		map[string]string{"id": fmt.Sprint(order.ID)})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Nothing changed: stock intact, no usage row written
	var updated model.Part
	require.NoError(t, database.GetDB().First(&updated, part.ID).Error)
	assert.Equal(t, 5, updated.Stock)

	var usages int64
	database.GetDB().Model(&model.PartUsage{}).Where("work_order_id = ?", order.ID).Count(&usages)
	assert.Equal(t, int64(0), usages)
}

func TestAddWorkOrderPartForeignPart(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "stock-org")
	otherOrg, _, _ := seedOrg(t, "other-org")
	order, _ := seedWorkOrderWithPart(t, org.ID, 5)

	foreign := model.Part{OrganizationID: otherOrg.ID, Name: "Yabancı Parça", Stock: 10}
	require.NoError(t, database.GetDB().Create(&foreign).Error)

	body := fmt.Sprintf(`{"part_id":%d,"quantity":1}`, foreign.ID)
	rec := doRequest(t, AddWorkOrderPart, http.MethodPost, "/api/work-orders/1/parts", body, sess,
		map[string]string{"id": fmt.Sprint(order.ID)})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveWorkOrderPartRestoresStock(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "stock-org")
	order, part := seedWorkOrderWithPart(t, org.ID, 5)

	body := fmt.Sprintf(`{"part_id":%d,"quantity":2}`, part.ID)
	rec := doRequest(t, AddWorkOrderPart, http.MethodPost, "/api/work-orders/1/parts", body, sess,
		map[string]string{"id": fmt.Sprint(order.ID)})
	require.Equal(t, http.StatusCreated, rec.Code)

	var usage model.PartUsage
	require.NoError(t, database.GetDB().Where("work_order_id = ?", order.ID).First(&usage).Error)

	rec = doRequest(t, RemoveWorkOrderPart, http.MethodDelete, "/api/work-orders/1/parts/1", "", sess,
		map[string]string{"id": fmt.Sprint(order.ID), "usageId": fmt.Sprint(usage.ID)})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Part
	require.NoError(t, database.GetDB().First(&updated, part.ID).Error)
	assert.Equal(t, 5, updated.Stock)

	var usages int64
	database.GetDB().Model(&model.PartUsage{}).Where("work_order_id = ?", order.ID).Count(&usages)
	assert.Equal(t, int64(0), usages)
}
