package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/jwtutil"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Organization{}))
	database.SetDB(db)
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func TestSessionAuthMiddlewareMissingToken(t *testing.T) {
	util := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "key", ExpirationHours: 1})
	mw := SessionAuthMiddleware(util, "servisim_token")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthMiddlewareCookie(t *testing.T) {
	util := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "key", ExpirationHours: 1})
	mw := SessionAuthMiddleware(util, "servisim_token")

	token, err := util.GenerateToken(1, 2, "OWNER", "a@b.com")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "servisim_token", Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	sess := SessionFrom(c)
	require.NotNil(t, sess)
	assert.Equal(t, uint(2), sess.OrgID)
}

func TestSessionAuthMiddlewareBearerFallback(t *testing.T) {
	util := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "key", ExpirationHours: 1})
	mw := SessionAuthMiddleware(util, "servisim_token")

	token, err := util.GenerateToken(1, 2, "OWNER", "a@b.com")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionAuthMiddlewareBadToken(t *testing.T) {
	util := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "key", ExpirationHours: 1})
	mw := SessionAuthMiddleware(util, "servisim_token")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "servisim_token", Value: "garbage"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func seedOrgWithTrialEnd(t *testing.T, end time.Time) model.Organization {
	t.Helper()
	org := model.Organization{
		Name:        "Test Org",
		Slug:        "test-org",
		Vertical:    model.VerticalElevator,
		PlanTier:    model.PlanTrial,
		TrialEndsAt: end,
	}
	require.NoError(t, database.GetDB().Create(&org).Error)
	return org
}

func entitlementContext(method string, orgID uint) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session", &jwtutil.SessionClaims{UserID: 1, OrgID: orgID, Role: "OWNER"})
	return c, rec
}

func TestEntitlementMiddlewareBlocksExpiredWrites(t *testing.T) {
	setupTestDB(t)
	org := seedOrgWithTrialEnd(t, time.Now().AddDate(0, 0, -1))

	mw := EntitlementMiddleware()
	c, rec := entitlementContext(http.MethodPost, org.ID)

	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEntitlementMiddlewareAllowsExpiredReads(t *testing.T) {
	setupTestDB(t)
	org := seedOrgWithTrialEnd(t, time.Now().AddDate(0, 0, -1))

	mw := EntitlementMiddleware()
	c, rec := entitlementContext(http.MethodGet, org.ID)

	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEntitlementMiddlewareAllowsActiveTrialWrites(t *testing.T) {
	setupTestDB(t)
	org := seedOrgWithTrialEnd(t, time.Now().AddDate(0, 0, 7))

	mw := EntitlementMiddleware()
	c, rec := entitlementContext(http.MethodPost, org.ID)

	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
