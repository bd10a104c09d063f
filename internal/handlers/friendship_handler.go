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

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	friendshipRepository   repositories.FriendshipRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(
	friendshipRepo repositories.FriendshipRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipRepository:   friendshipRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/request", h.SendFriendRequest)
	g.GET("/friends/requests/pending", h.GetPendingFriendRequests)
	g.PUT("/friends/request/:id/status", h.UpdateFriendRequestStatus)
	g.GET("/friends", h.GetFriends)
	g.DELETE("/friends/:id", h.DeleteFriend) // Unfriend
}

// SendFriendRequest handles sending a friend request
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userRepository.GetUserByID(req.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Receiver user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if currentUserID == req.ReceiverID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot send a friend request to yourself")
	}

	friendRequest := &models.FriendRequest{
		SenderID:   currentUserID,
		ReceiverID: req.ReceiverID,
	}

	if err := h.friendshipRepository.SendFriendRequest(friendRequest); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadyFriends):
			return echo.NewHTTPError(http.StatusConflict, "Users are already friends")
		case errors.Is(err, repositories.ErrFriendRequestPending):
			return echo.NewHTTPError(http.StatusConflict, "A pending friend request already exists between these users")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send friend request")
	}

	notifyBestEffort(h.notificationRepository, &models.Notification{
		Type:        models.NotificationTypeFriendRequest,
		ActorID:     currentUserID,
		RecipientID: req.ReceiverID,
		Title:       "New friend request",
		Message:     "You have a new friend request",
		Link:        "/friends/requests",
		Metadata:    map[string]any{"request_id": friendRequest.ID},
	})

	return c.JSON(http.StatusCreated, friendRequest)
}

// GetPendingFriendRequests retrieves pending friend requests for the authenticated user
func (h *FriendshipHandler) GetPendingFriendRequests(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requests, err := h.friendshipRepository.GetUserPendingFriendRequests(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, requests)
}

// UpdateFriendRequestStatus updates the status of a friend request (accept/reject)
func (h *FriendshipHandler) UpdateFriendRequestStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requestID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	var req models.UpdateFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	friendRequest, err := h.friendshipRepository.GetFriendRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Friend request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	// Only the receiver may accept or reject
	if friendRequest.ReceiverID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to modify this friend request")
	}

	if err := h.friendshipRepository.UpdateFriendRequestStatus(requestID, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update friend request")
	}
	friendRequest.Status = req.Status

	if req.Status == models.FriendStatusAccepted {
		notifyBestEffort(h.notificationRepository, &models.Notification{
			Type:        models.NotificationTypeFriendAccepted,
			ActorID:     currentUserID,
			RecipientID: friendRequest.SenderID,
			Title:       "Friend request accepted",
			Message:     "Your friend request was accepted",
			Link:        fmt.Sprintf("/users/%d", currentUserID),
		})
	}

	return c.JSON(http.StatusOK, friendRequest)
}

// GetFriends retrieves the list of friends for the authenticated user
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	friends, err := h.friendshipRepository.GetUserFriends(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	summaries := make([]models.UserCompact, len(friends))
	for i, u := range friends {
		summaries[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, summaries)
}

// DeleteFriend handles unfriending (deleting an accepted friend request)
func (h *FriendshipHandler) DeleteFriend(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	friendUserID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid friend user ID")
	}

	friendRequest, err := h.friendshipRepository.GetFriendRequestBySenderReceiver(currentUserID, friendUserID)
	if err != nil {
		friendRequest, err = h.friendshipRepository.GetFriendRequestBySenderReceiver(friendUserID, currentUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Friendship not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
		}
	}

	if friendRequest.Status != models.FriendStatusAccepted {
		return echo.NewHTTPError(http.StatusBadRequest, "Users are not friends")
	}

	if err := h.friendshipRepository.DeleteFriendRequest(friendRequest.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete friendship")
	}
	return c.NoContent(http.StatusNoContent)
}
