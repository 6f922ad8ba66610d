package handler

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
)

var workOrderCodePattern = regexp.MustCompile(`^WO-\d{2}-\d{5}$`)

func TestCreateWorkOrderGeneratesSequentialCodes(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "wo-org")
	customer := seedCustomer(t, org.ID, "Müşteri A")

	body := fmt.Sprintf(`{"customer_id":%d,"type":"FAULT","note":"kapı açılmıyor"}`, customer.ID)
	rec := doRequest(t, CreateWorkOrder, http.MethodPost, "/api/work-orders", body, sess, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var first model.WorkOrder
	require.NoError(t, database.GetDB().Where("organization_id = ?", org.ID).Order("id ASC").First(&first).Error)
	assert.Regexp(t, workOrderCodePattern, first.Code)
	assert.Regexp(t, `-00001$`, first.Code)
	assert.Equal(t, model.WorkOrderPending, first.Status)

	rec = doRequest(t, CreateWorkOrder, http.MethodPost, "/api/work-orders", body, sess, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var count int64
	database.GetDB().Model(&model.WorkOrder{}).Where("organization_id = ?", org.ID).Count(&count)
	assert.Equal(t, int64(2), count)

	var second model.WorkOrder
	require.NoError(t, database.GetDB().Where("organization_id = ?", org.ID).Order("id DESC").First(&second).Error)
	assert.Regexp(t, `-00002$`, second.Code)
}

func TestWorkOrderCodesScopedPerOrganization(t *testing.T) {
	setupTest(t)
	orgA, _, sessA := seedOrg(t, "org-a")
	orgB, _, sessB := seedOrg(t, "org-b")
	customerA := seedCustomer(t, orgA.ID, "Müşteri A")
	customerB := seedCustomer(t, orgB.ID, "Müşteri B")

	rec := doRequest(t, CreateWorkOrder, http.MethodPost, "/api/work-orders",
		fmt.Sprintf(`{"customer_id":%d}`, customerA.ID), sessA, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// The second organization starts its own sequence at the same code
	rec = doRequest(t, CreateWorkOrder, http.MethodPost, "/api/work-orders",
		fmt.Sprintf(`{"customer_id":%d}`, customerB.ID), sessB, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var first, second model.WorkOrder
	require.NoError(t, database.GetDB().Where("organization_id = ?", orgA.ID).First(&first).Error)
	require.NoError(t, database.GetDB().Where("organization_id = ?", orgB.ID).First(&second).Error)
	assert.Regexp(t, `-00001$`, first.Code)
	assert.Equal(t, first.Code, second.Code)
}

func TestCreateWorkOrderAfterDeleteDoesNotReuseCode(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "wo-org")
	customer := seedCustomer(t, org.ID, "Müşteri")
	body := fmt.Sprintf(`{"customer_id":%d}`, customer.ID)

	rec := doRequest(t, CreateWorkOrder, http.MethodPost, "/api/work-orders", body, sess, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var first model.WorkOrder
	require.NoError(t, database.GetDB().Where("organization_id = ?", org.ID).First(&first).Error)
	assert.Regexp(t, `-00001$`, first.Code)

	rec = doRequest(t, DeleteWorkOrder, http.MethodDelete, "/api/work-orders/1", "", sess,
		map[string]string{"id": fmt.Sprint(first.ID)})
	require.Equal(t, http.StatusOK, rec.Code)

	// The deleted order keeps its place in the sequence
	rec = doRequest(t, CreateWorkOrder, http.MethodPost, "/api/work-orders", body, sess, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var replacement model.WorkOrder
	require.NoError(t, database.GetDB().Where("organization_id = ?", org.ID).First(&replacement).Error)
	assert.Regexp(t, `-00002$`, replacement.Code)
}

func TestCreateWorkOrderRejectsForeignCustomer(t *testing.T) {
	setupTest(t)
	_, _, sess := seedOrg(t, "org-one")
	otherOrg, _, _ := seedOrg(t, "org-two")
	foreign := seedCustomer(t, otherOrg.ID, "Başka Firma")

	body := fmt.Sprintf(`{"customer_id":%d}`, foreign.ID)
	rec := doRequest(t, CreateWorkOrder, http.MethodPost, "/api/work-orders", body, sess, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateWorkOrderInvalidType(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "wo-org")
	customer := seedCustomer(t, org.ID, "Müşteri")

	body := fmt.Sprintf(`{"customer_id":%d,"type":"NOT_A_TYPE"}`, customer.ID)
	rec := doRequest(t, CreateWorkOrder, http.MethodPost, "/api/work-orders", body, sess, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetWorkOrderCrossTenantIsHidden(t *testing.T) {
	setupTest(t)
	org, _, _ := seedOrg(t, "org-one")
	_, _, otherSess := seedOrg(t, "org-two")
	customer := seedCustomer(t, org.ID, "Müşteri")

	order := model.WorkOrder{
		OrganizationID: org.ID,
		CustomerID:     customer.ID,
		Code:           "WO-26-00001",
		Type:           model.WorkOrderFault,
		Status:         model.WorkOrderPending,
	}
	require.NoError(t, database.GetDB().Create(&order).Error)

	rec := doRequest(t, GetWorkOrder, http.MethodGet, "/api/work-orders/1", "", otherSess,
		map[string]string{"id": fmt.Sprint(order.ID)})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateWorkOrderStatus(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "wo-org")
	customer := seedCustomer(t, org.ID, "Müşteri")

	order := model.WorkOrder{
		OrganizationID: org.ID,
		CustomerID:     customer.ID,
		Code:           "WO-26-00001",
		Type:           model.WorkOrderFault,
		Status:         model.WorkOrderPending,
	}
	require.NoError(t, database.GetDB().Create(&order).Error)

	rec := doRequest(t, UpdateWorkOrder, http.MethodPatch, "/api/work-orders/1",
		`{"status":"IN_PROGRESS","labor_cost":50000}`, sess,
		map[string]string{"id": fmt.Sprint(order.ID)})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.WorkOrder
	require.NoError(t, database.GetDB().First(&updated, order.ID).Error)
	assert.Equal(t, model.WorkOrderInProgress, updated.Status)
	assert.Equal(t, int64(50000), updated.LaborCost)

	rec = doRequest(t, UpdateWorkOrder, http.MethodPatch, "/api/work-orders/1",
		`{"status":"BOGUS"}`, sess,
		map[string]string{"id": fmt.Sprint(order.ID)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteWorkOrderSoftDeletes(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "wo-org")
	customer := seedCustomer(t, org.ID, "Müşteri")

	order := model.WorkOrder{
		OrganizationID: org.ID,
		CustomerID:     customer.ID,
		Code:           "WO-26-00001",
		Type:           model.WorkOrderFault,
		Status:         model.WorkOrderPending,
	}
	require.NoError(t, database.GetDB().Create(&order).Error)

	rec := doRequest(t, DeleteWorkOrder, http.MethodDelete, "/api/work-orders/1", "", sess,
		map[string]string{"id": fmt.Sprint(order.ID)})
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	database.GetDB().Model(&model.WorkOrder{}).Where("id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Still present in the table with a deletion stamp
	var raw int64
	database.GetDB().Unscoped().Model(&model.WorkOrder{}).Where("id = ?", order.ID).Count(&raw)
	assert.Equal(t, int64(1), raw)
}
