package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
	"gorm.io/gorm"
)

// RestaurantHandler handles restaurant listing, suggestion and verification
type RestaurantHandler struct {
	restaurantRepository   repositories.RestaurantRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewRestaurantHandler creates a new RestaurantHandler
func NewRestaurantHandler(
	restaurantRepo repositories.RestaurantRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantRepository:   restaurantRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterPublicRoutes registers the unauthenticated restaurant routes
func (h *RestaurantHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/restaurants", h.GetRestaurants)
	g.GET("/restaurants/:id", h.GetRestaurant)
}

// RegisterRestaurantRoutes registers the authenticated restaurant routes
func (h *RestaurantHandler) RegisterRestaurantRoutes(g *echo.Group) {
	g.POST("/restaurants/suggest", h.SuggestRestaurant)
}

// RegisterAdminRoutes registers the admin-only restaurant routes
func (h *RestaurantHandler) RegisterAdminRoutes(g *echo.Group) {
	g.PUT("/restaurants/:id/verify", h.VerifyRestaurant)
}

// GetRestaurants lists restaurants, optionally only verified ones
func (h *RestaurantHandler) GetRestaurants(c echo.Context) error {
	verifiedOnly := c.QueryParam("verified") == "true"
	restaurants, err := h.restaurantRepository.GetRestaurants(verifiedOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, restaurants)
}

// GetRestaurant returns one restaurant by ID
func (h *RestaurantHandler) GetRestaurant(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid restaurant ID")
	}
	restaurant, err := h.restaurantRepository.GetRestaurantByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Restaurant not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, restaurant)
}

// SuggestRestaurant creates an unverified restaurant owned by the caller.
// A duplicate name (case-insensitive) is rejected with the existing record's
// id so the client can link to it.
func (h *RestaurantHandler) SuggestRestaurant(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SuggestRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if existing, err := h.restaurantRepository.GetRestaurantByName(req.Name); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":      "A restaurant with this name already exists",
			"existingId": existing.ID,
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	restaurant := &models.Restaurant{
		OwnerID:    currentUserID,
		Name:       req.Name,
		Address:    req.Address,
		Area:       req.Area,
		Categories: req.Categories,
		IsVerified: false,
	}

	if err := h.restaurantRepository.CreateRestaurant(restaurant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "A restaurant with this name already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create restaurant")
	}

	return c.JSON(http.StatusCreated, restaurant)
}

// VerifyRestaurant sets the verification flag on a restaurant (admin only;
// enforced by the route group middleware) and notifies the owner
func (h *RestaurantHandler) VerifyRestaurant(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid restaurant ID")
	}

	var req models.VerifyRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	restaurant, err := h.restaurantRepository.GetRestaurantByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Restaurant not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if err := h.restaurantRepository.SetVerified(id, *req.IsVerified); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update restaurant")
	}
	restaurant.IsVerified = *req.IsVerified

	if restaurant.IsVerified {
		notifyBestEffort(h.notificationRepository, &models.Notification{
			Type:        models.NotificationTypeRestaurantVerified,
			ActorID:     currentUserID,
			RecipientID: restaurant.OwnerID,
			Title:       "Restaurant verified",
			Message:     fmt.Sprintf("%s has been verified", restaurant.Name),
			Link:        fmt.Sprintf("/restaurants/%d", restaurant.ID),
			Metadata:    map[string]any{"restaurant_id": restaurant.ID},
		})
	}

	return c.JSON(http.StatusOK, restaurant)
}
