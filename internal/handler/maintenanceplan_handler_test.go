package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
)

func seedAsset(t *testing.T, orgID, customerID uint) model.Asset {
	t.Helper()
	asset := model.Asset{
		OrganizationID: orgID,
		CustomerID:     customerID,
		Name:           "A Blok Asansör",
	}
	require.NoError(t, database.GetDB().Create(&asset).Error)
	return asset
}

func TestCreateMaintenancePlanDefaultsDueDate(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "plan-org")
	customer := seedCustomer(t, org.ID, "Müşteri")
	asset := seedAsset(t, org.ID, customer.ID)

	body := fmt.Sprintf(`{"asset_id":%d,"period_months":3}`, asset.ID)
	rec := doRequest(t, CreateMaintenancePlan, http.MethodPost, "/api/maintenance-plans", body, sess, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var plan model.MaintenancePlan
	require.NoError(t, database.GetDB().Where("asset_id = ?", asset.ID).First(&plan).Error)
	assert.Equal(t, 3, plan.PeriodMonths)
	assert.WithinDuration(t, time.Now().AddDate(0, 3, 0), plan.NextDueAt, time.Minute)
	assert.Nil(t, plan.LastDoneAt)
}

func TestMaintenancePlanPeriodBounds(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "plan-org")
	customer := seedCustomer(t, org.ID, "Müşteri")
	asset := seedAsset(t, org.ID, customer.ID)

	for _, period := range []int{-1, 25} {
		body := fmt.Sprintf(`{"asset_id":%d,"period_months":%d}`, asset.ID, period)
		rec := doRequest(t, CreateMaintenancePlan, http.MethodPost, "/api/maintenance-plans", body, sess, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "period %d", period)
	}

	plan := model.MaintenancePlan{
		OrganizationID: org.ID,
		AssetID:        asset.ID,
		PeriodMonths:   6,
		NextDueAt:      time.Now().AddDate(0, 6, 0),
	}
	require.NoError(t, database.GetDB().Create(&plan).Error)

	rec := doRequest(t, UpdateMaintenancePlan, http.MethodPatch, "/api/maintenance-plans/1",
		`{"period_months":25}`, sess, map[string]string{"id": fmt.Sprint(plan.ID)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var unchanged model.MaintenancePlan
	require.NoError(t, database.GetDB().First(&unchanged, plan.ID).Error)
	assert.Equal(t, 6, unchanged.PeriodMonths)
}

func TestMarkMaintenanceDone(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "plan-org")
	customer := seedCustomer(t, org.ID, "Müşteri")
	asset := seedAsset(t, org.ID, customer.ID)

	plan := model.MaintenancePlan{
		OrganizationID: org.ID,
		AssetID:        asset.ID,
		PeriodMonths:   1,
		NextDueAt:      time.Now().AddDate(0, 0, -3),
	}
	require.NoError(t, database.GetDB().Create(&plan).Error)

	rec := doRequest(t, UpdateMaintenancePlan, http.MethodPatch, "/api/maintenance-plans/1",
		`{"mark_done":true}`, sess, map[string]string{"id": fmt.Sprint(plan.ID)})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.MaintenancePlan
	require.NoError(t, database.GetDB().First(&updated, plan.ID).Error)
	require.NotNil(t, updated.LastDoneAt)
	assert.WithinDuration(t, time.Now(), *updated.LastDoneAt, time.Minute)
	// Due date rolls forward one period from completion, not from the old due date
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), updated.NextDueAt, time.Minute)

	var updatedAsset model.Asset
	require.NoError(t, database.GetDB().First(&updatedAsset, asset.ID).Error)
	require.NotNil(t, updatedAsset.LastMaintenanceAt)
	assert.WithinDuration(t, time.Now(), *updatedAsset.LastMaintenanceAt, time.Minute)
}

func TestMaintenancePlanCrossTenantIsHidden(t *testing.T) {
	setupTest(t)
	org, _, _ := seedOrg(t, "plan-org")
	_, _, otherSess := seedOrg(t, "other-org")
	customer := seedCustomer(t, org.ID, "Müşteri")
	asset := seedAsset(t, org.ID, customer.ID)

	plan := model.MaintenancePlan{
		OrganizationID: org.ID,
		AssetID:        asset.ID,
		PeriodMonths:   1,
		NextDueAt:      time.Now(),
	}
	require.NoError(t, database.GetDB().Create(&plan).Error)

	rec := doRequest(t, UpdateMaintenancePlan, http.MethodPatch, "/api/maintenance-plans/1",
		`{"mark_done":true}`, otherSess, map[string]string{"id": fmt.Sprint(plan.ID)})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
