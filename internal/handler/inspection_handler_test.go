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

func TestCreateInspectionDerivesLabelAndUpdatesAsset(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "insp-org")
	customer := seedCustomer(t, org.ID, "Müşteri")
	asset := seedAsset(t, org.ID, customer.ID)

	body := fmt.Sprintf(`{"asset_id":%d,"inspection_date":"2026-05-10","result":"HAFIF_KUSURLU","inspection_body":"TMMOB MMO"}`, asset.ID)
	rec := doRequest(t, CreateInspection, http.MethodPost, "/api/inspections", body, sess, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var inspection model.Inspection
	require.NoError(t, database.GetDB().Where("asset_id = ?", asset.ID).First(&inspection).Error)
	assert.Equal(t, model.LabelBlue, inspection.Label)
	// Next due defaults to one year after the inspection date
	assert.Equal(t, time.Date(2027, 5, 10, 0, 0, 0, 0, time.UTC), inspection.NextDueDate.UTC())

	var updated model.Asset
	require.NoError(t, database.GetDB().First(&updated, asset.ID).Error)
	assert.Equal(t, model.LabelBlue, updated.InspectionLabel)
	require.NotNil(t, updated.LastInspectionAt)
	require.NotNil(t, updated.NextInspectionAt)
}

func TestCreateInspectionUnsafeResult(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "insp-org")
	customer := seedCustomer(t, org.ID, "Müşteri")
	asset := seedAsset(t, org.ID, customer.ID)

	body := fmt.Sprintf(`{"asset_id":%d,"inspection_date":"2026-05-10","result":"GUVENSIZ"}`, asset.ID)
	rec := doRequest(t, CreateInspection, http.MethodPost, "/api/inspections", body, sess, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var updated model.Asset
	require.NoError(t, database.GetDB().First(&updated, asset.ID).Error)
	assert.Equal(t, model.LabelRed, updated.InspectionLabel)
}

func TestCreateInspectionInvalidResult(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "insp-org")
	customer := seedCustomer(t, org.ID, "Müşteri")
	asset := seedAsset(t, org.ID, customer.ID)

	body := fmt.Sprintf(`{"asset_id":%d,"inspection_date":"2026-05-10","result":"FINE"}`, asset.ID)
	rec := doRequest(t, CreateInspection, http.MethodPost, "/api/inspections", body, sess, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
