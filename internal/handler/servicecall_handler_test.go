package handler

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
)

var serviceCallCodePattern = regexp.MustCompile(`^SRV-\d{4}-\d{4}$`)

func seedDevice(t *testing.T, orgID, customerID uint) model.Device {
	t.Helper()
	device := model.Device{
		OrganizationID: orgID,
		CustomerID:     customerID,
		Category:       model.DeviceWashingMachine,
		ModelName:      "Çamaşır Makinesi X100",
		WarrantyYears:  2,
	}
	require.NoError(t, database.GetDB().Create(&device).Error)
	return device
}

func TestCreateServiceCallFlagsDeviceUnderRepair(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "call-org")
	customer := seedCustomer(t, org.ID, "Servis Müşterisi")
	device := seedDevice(t, org.ID, customer.ID)

	body := fmt.Sprintf(`{"customer_id":%d,"device_id":%d,"fault_description":"sıkma yapmıyor"}`,
		customer.ID, device.ID)
	rec := doRequest(t, CreateServiceCall, http.MethodPost, "/api/service-calls", body, sess, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var call model.ServiceCall
	require.NoError(t, database.GetDB().Where("organization_id = ?", org.ID).First(&call).Error)
	assert.Regexp(t, serviceCallCodePattern, call.Code)
	assert.Equal(t, model.CallReceived, call.Status)
	assert.Equal(t, model.CallFaultRepair, call.CallType)
	assert.False(t, call.ReceivedAt.IsZero())

	var updated model.Device
	require.NoError(t, database.GetDB().First(&updated, device.ID).Error)
	assert.True(t, updated.IsUnderRepair)
}

func TestCreateServiceCallForeignDevice(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "call-org")
	otherOrg, _, _ := seedOrg(t, "other-org")
	customer := seedCustomer(t, org.ID, "Müşteri")
	otherCustomer := seedCustomer(t, otherOrg.ID, "Yabancı Müşteri")
	foreignDevice := seedDevice(t, otherOrg.ID, otherCustomer.ID)

	body := fmt.Sprintf(`{"customer_id":%d,"device_id":%d}`, customer.ID, foreignDevice.ID)
	rec := doRequest(t, CreateServiceCall, http.MethodPost, "/api/service-calls", body, sess, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompleteServiceCallReleasesDevice(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "call-org")
	customer := seedCustomer(t, org.ID, "Müşteri")
	device := seedDevice(t, org.ID, customer.ID)

	call := model.ServiceCall{
		OrganizationID: org.ID,
		CustomerID:     customer.ID,
		DeviceID:       device.ID,
		Code:           "SRV-2026-0001",
		CallType:       model.CallFaultRepair,
		Status:         model.CallInProgress,
		Priority:       model.PriorityNormal,
		WarrantyStatus: model.WarrantyUnknown,
		VisitType:      model.VisitHome,
		ReceivedAt:     time.Now().AddDate(0, 0, -5),
	}
	require.NoError(t, database.GetDB().Create(&call).Error)
	require.NoError(t, database.GetDB().Model(&model.Device{}).
		Where("id = ?", device.ID).Update("is_under_repair", true).Error)

	rec := doRequest(t, UpdateServiceCall, http.MethodPatch, "/api/service-calls/1",
		`{"status":"COMPLETED","repair_description":"pompa değişti"}`, sess,
		map[string]string{"id": fmt.Sprint(call.ID)})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.ServiceCall
	require.NoError(t, database.GetDB().First(&updated, call.ID).Error)
	assert.Equal(t, model.CallCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	require.NotNil(t, updated.WorkingDaysUsed)
	assert.Equal(t, 5, *updated.WorkingDaysUsed)

	var releasedDevice model.Device
	require.NoError(t, database.GetDB().First(&releasedDevice, device.ID).Error)
	assert.False(t, releasedDevice.IsUnderRepair)
}

func TestListServiceCallsReportsDeadlineBreach(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "call-org")
	customer := seedCustomer(t, org.ID, "Müşteri")
	device := seedDevice(t, org.ID, customer.ID)

	call := model.ServiceCall{
		OrganizationID: org.ID,
		CustomerID:     customer.ID,
		DeviceID:       device.ID,
		Code:           "SRV-2026-0001",
		CallType:       model.CallFaultRepair,
		Status:         model.CallWaitingParts,
		Priority:       model.PriorityNormal,
		WarrantyStatus: model.WarrantyUnknown,
		VisitType:      model.VisitHome,
		ReceivedAt:     time.Now().AddDate(0, 0, -40),
	}
	require.NoError(t, database.GetDB().Create(&call).Error)

	rec := doRequest(t, ListServiceCalls, http.MethodGet, "/api/service-calls", "", sess, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody(t, rec)
	items := resp["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, true, item["legal_deadline_breached"])
	assert.Equal(t, float64(40), item["days_since_received"])
}

func TestAddServiceCallPartRecordsUnitPrice(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "call-org")
	customer := seedCustomer(t, org.ID, "Müşteri")
	device := seedDevice(t, org.ID, customer.ID)

	call := model.ServiceCall{
		OrganizationID: org.ID,
		CustomerID:     customer.ID,
		DeviceID:       device.ID,
		Code:           "SRV-2026-0001",
		CallType:       model.CallWarrantyRepair,
		Status:         model.CallInProgress,
		Priority:       model.PriorityNormal,
		WarrantyStatus: model.InWarranty,
		VisitType:      model.VisitHome,
		ReceivedAt:     time.Now(),
	}
	require.NoError(t, database.GetDB().Create(&call).Error)

	part := model.Part{OrganizationID: org.ID, Name: "Pompa", Price: 35000, Stock: 4}
	require.NoError(t, database.GetDB().Create(&part).Error)

	body := fmt.Sprintf(`{"part_id":%d,"quantity":1,"is_warranty_covered":true}`, part.ID)
	rec := doRequest(t, AddServiceCallPart, http.MethodPost, "/api/service-calls/1/parts", body, sess,
		map[string]string{"id": fmt.Sprint(call.ID)})
	require.Equal(t, http.StatusCreated, rec.Code)

	var usage model.ServicePartUsage
	require.NoError(t, database.GetDB().Where("service_call_id = ?", call.ID).First(&usage).Error)
	// Falls back to the part's list price
	assert.Equal(t, int64(35000), usage.UnitPrice)
	assert.True(t, usage.IsWarrantyCovered)

	var updated model.Part
	require.NoError(t, database.GetDB().First(&updated, part.ID).Error)
	assert.Equal(t, 3, updated.Stock)
}
