package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/pkg/jwtutil"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
	"github.com/ozgundoganbatuhan-lang/asansor/prometheus"
)

const sessionKey = "session"

// SessionAuthMiddleware validates the signed session token. The token is
// carried in an httpOnly cookie; an Authorization Bearer header is accepted
// as a fallback for API clients.
func SessionAuthMiddleware(jwtUtil *jwtutil.JWTUtil, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			tokenString := ""
			if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
				tokenString = cookie.Value
			} else if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
					log.Warn("Invalid authorization header format")
					prometheus.RecordAuthError("invalid_auth_format")
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
				}
				tokenString = parts[1]
			}

			if tokenString == "" {
				log.Warn("Missing session token")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			claims, err := jwtUtil.ValidateToken(tokenString)
			if err != nil {
				log.Warn("Invalid or expired session token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired session"})
			}

			// Store the claims in the context for later use
			c.Set(sessionKey, claims)
			log.Debug("Session validated",
				zap.Uint("user_id", claims.UserID),
				zap.Uint("org_id", claims.OrgID),
				zap.String("email", claims.Email))

			return next(c)
		}
	}
}

// SessionFrom retrieves the session claims stored by SessionAuthMiddleware.
// Returns nil when the request is unauthenticated.
func SessionFrom(c echo.Context) *jwtutil.SessionClaims {
	claims, ok := c.Get(sessionKey).(*jwtutil.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
