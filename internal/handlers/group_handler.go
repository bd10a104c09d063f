package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
	"gorm.io/gorm"
)

// GroupHandler handles group and group chat HTTP requests
type GroupHandler struct {
	groupRepository   repositories.GroupRepository
	messageRepository repositories.MessageRepository
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupRepo repositories.GroupRepository, messageRepo repositories.MessageRepository) *GroupHandler {
	return &GroupHandler{
		groupRepository:   groupRepo,
		messageRepository: messageRepo,
	}
}

// RegisterGroupRoutes registers group-related routes
func (h *GroupHandler) RegisterGroupRoutes(g *echo.Group) {
	g.POST("/groups", h.CreateGroup)
	g.GET("/groups", h.GetGroups)
	g.POST("/groups/join", h.JoinGroup)
	g.GET("/groups/:id/messages", h.GetMessages)
	g.POST("/groups/:id/messages", h.SendMessage)
}

// CreateGroup creates a group; the creator becomes its first admin member
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	group := &models.Group{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     currentUserID,
		InviteCode:  uuid.NewString(),
	}

	if err := h.groupRepository.CreateGroup(group, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create group")
	}

	return c.JSON(http.StatusCreated, group)
}

// GetGroups lists the caller's groups
func (h *GroupHandler) GetGroups(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	groups, err := h.groupRepository.GetGroupsByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, groups)
}

// JoinGroup adds the caller as a member via invite code
func (h *GroupHandler) JoinGroup(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.JoinGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	group, err := h.groupRepository.GetGroupByInviteCode(req.InviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	member := &models.GroupMember{
		GroupID: group.ID,
		UserID:  currentUserID,
		Role:    models.GroupRoleMember,
	}
	if err := h.groupRepository.AddMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Already a member of this group")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to join group")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "group": group})
}

// GetMessages returns a newest-first page of the group's chat history;
// members only
func (h *GroupHandler) GetMessages(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	groupID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid group ID")
	}

	isMember, err := h.groupRepository.IsMember(groupID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	if !isMember {
		return echo.NewHTTPError(http.StatusForbidden, "You are not a member of this group")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	skip := int64((page - 1) * limit)

	messages, err := h.messageRepository.GetMessagesByGroupID(c.Request().Context(), groupID, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Message store unavailable")
	}
	return c.JSON(http.StatusOK, messages)
}

// SendMessage posts a chat message to a group; members only
func (h *GroupHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	groupID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid group ID")
	}

	var req models.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	isMember, err := h.groupRepository.IsMember(groupID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	if !isMember {
		return echo.NewHTTPError(http.StatusForbidden, "You are not a member of this group")
	}

	message := &models.Message{
		GroupID:  groupID,
		SenderID: currentUserID,
		Content:  req.Content,
	}
	if err := h.messageRepository.CreateMessage(c.Request().Context(), message); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Message store unavailable")
	}

	return c.JSON(http.StatusCreated, message)
}
