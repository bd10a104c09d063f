package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
	"gorm.io/gorm"
)

// DishHandler handles dish listing and business-managed dish creation,
// plus per-dish feedback
type DishHandler struct {
	dishRepository       repositories.DishRepository
	restaurantRepository repositories.RestaurantRepository
	feedbackRepository   repositories.FeedbackRepository
}

// NewDishHandler creates a new DishHandler
func NewDishHandler(
	dishRepo repositories.DishRepository,
	restaurantRepo repositories.RestaurantRepository,
	feedbackRepo repositories.FeedbackRepository,
) *DishHandler {
	return &DishHandler{
		dishRepository:       dishRepo,
		restaurantRepository: restaurantRepo,
		feedbackRepository:   feedbackRepo,
	}
}

// RegisterPublicRoutes registers the unauthenticated dish routes
func (h *DishHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/dishes", h.GetDishes)
	g.GET("/dishes/:id/feedback", h.GetFeedback)
}

// RegisterDishRoutes registers the authenticated dish routes
func (h *DishHandler) RegisterDishRoutes(g *echo.Group) {
	g.POST("/dishes/:id/feedback", h.UpsertFeedback)
}

// RegisterBusinessRoutes registers routes restricted to business accounts
func (h *DishHandler) RegisterBusinessRoutes(g *echo.Group) {
	g.POST("/dishes", h.CreateDish)
}

// GetDishes lists dishes for a restaurant
func (h *DishHandler) GetDishes(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.QueryParam("restaurant_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "restaurant_id query parameter is required")
	}

	dishes, err := h.dishRepository.GetDishesByRestaurantID(uint(restaurantID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, dishes)
}

// CreateDish creates a dish. The business-role check sits on the route group;
// ownership of the restaurant is checked here.
func (h *DishHandler) CreateDish(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateDishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	restaurant, err := h.restaurantRepository.GetRestaurantByID(req.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Restaurant not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	if restaurant.OwnerID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You do not own this restaurant")
	}

	dish := &models.Dish{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		IsAvailable:  true,
	}
	if req.Currency != "" {
		dish.Currency = req.Currency
	}

	if err := h.dishRepository.CreateDish(dish); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create dish")
	}

	return c.JSON(http.StatusCreated, dish)
}

// GetFeedback lists all feedback records for a dish
func (h *DishHandler) GetFeedback(c echo.Context) error {
	dishID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid dish ID")
	}

	if _, err := h.dishRepository.GetDishByID(dishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Dish not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	feedback, err := h.feedbackRepository.GetFeedbackByDishID(dishID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, feedback)
}

// UpsertFeedback records the caller's feedback for a dish; resubmission
// replaces the earlier record for the same (dish, user) pair
func (h *DishHandler) UpsertFeedback(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	dishID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid dish ID")
	}

	var req models.UpsertFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Rating must be between 1 and 5")
	}

	if _, err := h.dishRepository.GetDishByID(dishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Dish not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	feedback := &models.DishFeedback{
		DishID:  dishID,
		UserID:  currentUserID,
		Rating:  req.Rating,
		Content: req.Content,
		Tags:    req.Tags,
	}
	if err := h.feedbackRepository.UpsertFeedback(feedback); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save feedback")
	}

	return c.JSON(http.StatusOK, feedback)
}
