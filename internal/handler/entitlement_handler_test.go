package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
)

func TestGetEntitlementsActiveTrial(t *testing.T) {
	setupTest(t)
	_, _, sess := seedOrg(t, "ent-org")

	rec := doRequest(t, GetEntitlements, http.MethodGet, "/api/entitlements", "", sess, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ent := decodeBody(t, rec)["ent"].(map[string]interface{})
	assert.Equal(t, "TRIAL", ent["plan_tier"])
	assert.Equal(t, true, ent["is_trial"])
	assert.Equal(t, false, ent["is_expired"])
	assert.Equal(t, true, ent["can_write"])
	assert.Equal(t, true, ent["can_export"])
	assert.Equal(t, float64(14), ent["days_left"])
}

func TestGetEntitlementsExpiredTrial(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "ent-org")
	require.NoError(t, database.GetDB().Model(&model.Organization{}).
		Where("id = ?", org.ID).
		Update("trial_ends_at", time.Now().AddDate(0, 0, -2)).Error)

	rec := doRequest(t, GetEntitlements, http.MethodGet, "/api/entitlements", "", sess, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ent := decodeBody(t, rec)["ent"].(map[string]interface{})
	assert.Equal(t, true, ent["is_expired"])
	assert.Equal(t, false, ent["can_write"])
	assert.Equal(t, false, ent["can_export"])
	assert.Equal(t, float64(0), ent["days_left"])
}

func TestGetEntitlementsProPlan(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "ent-org")
	require.NoError(t, database.GetDB().Model(&model.Organization{}).
		Where("id = ?", org.ID).
		Updates(map[string]interface{}{
			"plan_tier":     model.PlanPro,
			"trial_ends_at": time.Now().AddDate(0, 0, -30),
		}).Error)

	rec := doRequest(t, GetEntitlements, http.MethodGet, "/api/entitlements", "", sess, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ent := decodeBody(t, rec)["ent"].(map[string]interface{})
	// A paid plan never expires regardless of the trial timestamp
	assert.Equal(t, false, ent["is_trial"])
	assert.Equal(t, false, ent["is_expired"])
	assert.Equal(t, true, ent["can_write"])
}
