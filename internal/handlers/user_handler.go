package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
	"gorm.io/gorm"
)

// handleRegexp is the one format rule for handles: lowercase letters, digits,
// underscore, dot and dash, 3 to 20 characters. Checked before any storage
// access; check-handle and set-handle share it so they can never disagree.
var handleRegexp = regexp.MustCompile(`^[a-z0-9_.-]{3,20}$`)

func isValidHandle(handle string) bool {
	return handleRegexp.MatchString(handle)
}

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers the authenticated user routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.POST("/users/set-handle", h.SetHandle)
	g.GET("/users/me", h.Me)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUser)
}

// RegisterPublicRoutes registers user routes that need no session
func (h *UserHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users/check-handle", h.CheckHandle)
}

// SetHandle claims a handle for the authenticated identity. The availability
// pre-check is a UX fast path only; the unique index on the handle column is
// what actually decides a race between two claims.
func (h *UserHandler) SetHandle(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SetHandleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !isValidHandle(req.Handle) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid handle format")
	}

	if claims.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Session has no email address")
	}

	// Fast-path availability check
	if existing, err := h.userRepository.GetUserByHandle(req.Handle); err == nil && existing.ID != claims.UserID {
		return echo.NewHTTPError(http.StatusConflict, "Handle already taken")
	}

	user, err := h.userRepository.GetUserByEmail(claims.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
		}
		user = &models.User{
			Email: claims.Email,
			Role:  models.RoleUser,
		}
		user.Handle = &req.Handle
		if claims.FirebaseUID != "" {
			uid := claims.FirebaseUID
			user.FirebaseUID = &uid
		}
		if req.Name != "" {
			user.Name = req.Name
		}
		if err := h.userRepository.CreateUser(user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return echo.NewHTTPError(http.StatusConflict, "Handle already taken")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}

	user.Handle = &req.Handle
	if claims.FirebaseUID != "" {
		uid := claims.FirebaseUID
		user.FirebaseUID = &uid
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if err := h.userRepository.UpdateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Handle already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update user")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// CheckHandle reports handle availability; an invalid format is simply
// unavailable, not an error
func (h *UserHandler) CheckHandle(c echo.Context) error {
	handle := c.QueryParam("handle")
	if !isValidHandle(handle) {
		return c.JSON(http.StatusOK, echo.Map{"available": false})
	}

	_, err := h.userRepository.GetUserByHandle(handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"available": true})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"available": false})
}

// Me returns the caller's profile with the authoritative onboarding state.
// The live lookup here overrides the cached has_handle claim, which may be
// stale immediately after onboarding.
func (h *UserHandler) Me(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Identity exists but no profile record yet: onboarding pending
			return c.JSON(http.StatusOK, echo.Map{"hasHandle": false, "user": nil})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"hasHandle": user.HasHandle(claims.FirebaseUID),
		"user":      user,
	})
}

// GetUser returns another user's public summary
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, user.ToCompact())
}

// SearchUsers searches for users by handle, name or email, excluding the caller
func (h *UserHandler) SearchUsers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	query := c.QueryParam("q")
	if utf8.RuneCountInString(query) < 2 {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' must be at least 2 characters")
	}

	users, err := h.userRepository.SearchUsers(query, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	summaries := make([]models.UserCompact, len(users))
	for i, u := range users {
		summaries[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, summaries)
}
