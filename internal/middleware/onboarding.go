package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
)

// RequireHandle is the onboarding gate: requests reach the wrapped routes only
// once the caller has claimed a handle. The JWT carries a cached has_handle
// flag; because that flag is stale right after onboarding, a false value falls
// back to a live profile lookup, which is the authoritative source.
func RequireHandle(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*models.JwtCustomClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if claims.HasHandle {
				return next(c)
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Handle not set, complete onboarding first")
			}
			if !user.HasHandle(claims.FirebaseUID) {
				return echo.NewHTTPError(http.StatusForbidden, "Handle not set, complete onboarding first")
			}
			return next(c)
		}
	}
}
