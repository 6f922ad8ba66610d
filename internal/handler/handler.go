package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/middleware"
	"github.com/ozgundoganbatuhan-lang/asansor/internal/smsgateway"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/config"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/jwtutil"
)

var (
	jwtUtil   *jwtutil.JWTUtil
	conf      *config.Config
	smsClient *smsgateway.Client
)

// Init wires the handler package to its runtime dependencies. Called once
// from main and from the test helpers.
func Init(c *config.Config) {
	conf = c
	jwtUtil = jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      c.JWT.SigningKey,
		ExpirationHours: c.JWT.ExpirationHours,
	})
	smsClient = smsgateway.NewClient(&c.SMS)
}

// JWT returns the configured token utility, for wiring the auth middleware
func JWT() *jwtutil.JWTUtil {
	return jwtUtil
}

// CookieName returns the configured session cookie name
func CookieName() string {
	return conf.JWT.CookieName
}

func session(c echo.Context) *jwtutil.SessionClaims {
	return middleware.SessionFrom(c)
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     conf.JWT.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   conf.JWT.ExpirationHours * 3600,
		HttpOnly: true,
		Secure:   conf.JWT.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     conf.JWT.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   conf.JWT.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// withCodeRetry runs a create transaction that generates a sequential code,
// retrying when a concurrent insert took the same code. Counting inside the
// transaction is not enough on its own: two transactions under READ COMMITTED
// can observe the same count, and the loser surfaces as a unique index
// violation.
func withCodeRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if err = fn(); !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return err
}

// idParam parses a numeric path parameter
func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// parseTime accepts RFC3339 timestamps and bare dates
func parseTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("invalid date %q", value)
}
