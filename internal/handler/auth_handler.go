package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
	"github.com/ozgundoganbatuhan-lang/asansor/prometheus"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// RegisterRequest defines the structure for organization sign-up
type RegisterRequest struct {
	OrganizationName string `json:"organization_name"`
	OrganizationSlug string `json:"organization_slug"`
	Vertical         string `json:"vertical"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

// Register creates a new organization on a trial plan together with its
// OWNER user and opens a session.
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if len(req.OrganizationName) < 2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "organization name must be at least 2 characters"})
	}
	if len(req.OrganizationSlug) < 2 || len(req.OrganizationSlug) > 40 || !slugPattern.MatchString(req.OrganizationSlug) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slug must be 2-40 characters of a-z, 0-9 and -"})
	}
	if !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email address"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}
	vertical := req.Vertical
	if vertical == "" {
		vertical = model.VerticalElevator
	}
	if vertical != model.VerticalElevator && vertical != model.VerticalWhiteGoods {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vertical"})
	}

	db := database.GetDB()

	var count int64
	db.Model(&model.Organization{}).Where("slug = ?", req.OrganizationSlug).Count(&count)
	if count > 0 {
		log.Warn("Slug already taken", zap.String("slug", req.OrganizationSlug))
		return c.JSON(http.StatusConflict, echo.Map{"error": "slug already taken"})
	}

	db.Model(&model.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		log.Warn("Email already registered", zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	name := req.Name
	if name == "" {
		name = strings.Split(req.Email, "@")[0]
	}

	org := model.Organization{
		Name:        req.OrganizationName,
		Slug:        req.OrganizationSlug,
		Vertical:    vertical,
		PlanTier:    model.PlanTrial,
		TrialEndsAt: time.Now().AddDate(0, 0, conf.Trial.Days),
	}
	user := model.User{
		Name:         name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleOwner,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&org); result.Error != nil {
			return result.Error
		}
		user.OrganizationID = org.ID
		if result := tx.Create(&user); result.Error != nil {
			return result.Error
		}
		return nil
	})
	if err != nil {
		log.Error("Failed to create organization", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	token, err := jwtUtil.GenerateToken(user.ID, org.ID, user.Role, user.Email)
	if err != nil {
		log.Error("Failed to generate session token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}
	setSessionCookie(c, token)
	prometheus.IncreaseActiveSessions()

	log.Info("Organization registered",
		zap.Uint("org_id", org.ID),
		zap.String("slug", org.Slug),
		zap.String("email", user.Email))

	return c.JSON(http.StatusCreated, echo.Map{
		"ok":    true,
		"token": token,
		"org": map[string]interface{}{
			"id":   org.ID,
			"name": org.Name,
			"slug": org.Slug,
		},
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OrgSlug  string `json:"org_slug"`
}

// Login verifies credentials and opens a session
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_login")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := database.GetDB().Preload("Organization").Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if req.OrgSlug != "" && user.Organization.Slug != req.OrgSlug {
		log.Warn("Organization slug mismatch",
			zap.String("email", req.Email),
			zap.String("slug", req.OrgSlug))
		prometheus.RecordAuthError("org_mismatch")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no account for this organization"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtUtil.GenerateToken(user.ID, user.OrganizationID, user.Role, user.Email)
	if err != nil {
		log.Error("Failed to generate session token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}
	setSessionCookie(c, token)
	prometheus.IncreaseActiveSessions()

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.Uint("org_id", user.OrganizationID),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"ok":    true,
		"token": token,
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Logout clears the session cookie
func Logout(c echo.Context) error {
	clearSessionCookie(c)
	prometheus.DecreaseActiveSessions()
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Me returns the authenticated user
func Me(c echo.Context) error {
	sess := session(c)

	var user model.User
	result := database.GetDB().Where("id = ? AND organization_id = ?", sess.UserID, sess.OrgID).First(&user)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "user": user})
}
