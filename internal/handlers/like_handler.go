package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
	"gorm.io/gorm"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository         repositories.LikeRepository
	noteRepository         repositories.NoteRepository
	notificationRepository repositories.NotificationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likeRepo repositories.LikeRepository,
	noteRepo repositories.NoteRepository,
	notifRepo repositories.NotificationRepository,
) *LikeHandler {
	return &LikeHandler{
		likeRepository:         likeRepo,
		noteRepository:         noteRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/notes/:id/like", h.ToggleLike)
	g.GET("/notes/:id/like", h.GetLikeStatus)
}

// ToggleLike flips the caller's like on a note. A second call undoes the
// first; the repository keeps the note's likes_count in step with the edge.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid note ID")
	}

	note, err := h.noteRepository.GetNoteByID(noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Note not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	liked, err := h.likeRepository.ToggleLike(noteID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle like")
	}

	if liked && note.UserID != currentUserID {
		notifyBestEffort(h.notificationRepository, &models.Notification{
			Type:        models.NotificationTypeLike,
			ActorID:     currentUserID,
			RecipientID: note.UserID,
			Title:       "New like",
			Message:     fmt.Sprintf("Someone liked your note %q", note.Title),
			Link:        fmt.Sprintf("/notes/%d", note.ID),
			Metadata:    map[string]any{"note_id": note.ID},
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}

// GetLikeStatus reports whether the caller has liked the note
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid note ID")
	}

	liked, err := h.likeRepository.HasUserLikedNote(noteID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}
