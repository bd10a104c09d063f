package handlers

import (
	"log"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
)

// parseUintParam parses a numeric path parameter
func parseUintParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// getClaimsFromContext returns the JWT claims set by the auth middleware, or nil
func getClaimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// getUserIDFromContext returns the authenticated user's ID, or 0 when anonymous
func getUserIDFromContext(c echo.Context) uint {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return 0
	}
	return claims.UserID
}

// notifyBestEffort writes a notification row without ever failing the
// triggering action: a write failure is logged and swallowed. The client
// re-derives the authoritative unread count by polling, so a dropped
// notification is tolerable.
func notifyBestEffort(repo repositories.NotificationRepository, n *models.Notification) {
	if err := repo.CreateNotification(n); err != nil {
		log.Printf("notification write failed (type=%s recipient=%d): %v", n.Type, n.RecipientID, err)
	}
}
