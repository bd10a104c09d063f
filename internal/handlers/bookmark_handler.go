package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
	"gorm.io/gorm"
)

// BookmarkHandler handles bookmark HTTP requests
type BookmarkHandler struct {
	bookmarkRepository repositories.BookmarkRepository
	noteRepository     repositories.NoteRepository
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkRepo repositories.BookmarkRepository, noteRepo repositories.NoteRepository) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkRepository: bookmarkRepo,
		noteRepository:     noteRepo,
	}
}

// RegisterBookmarkRoutes registers the authenticated bookmark routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.POST("/notes/:id/bookmark", h.CreateBookmark)
	g.GET("/bookmarks", h.GetBookmarks)
	g.DELETE("/bookmarks/:id", h.DeleteBookmark)
}

// RegisterCheckRoute registers the optional-auth bookmark status route
func (h *BookmarkHandler) RegisterCheckRoute(g *echo.Group) {
	g.GET("/bookmarks/check", h.CheckBookmark)
}

// CreateBookmark saves a note for the caller
func (h *BookmarkHandler) CreateBookmark(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid note ID")
	}

	if _, err := h.noteRepository.GetNoteByID(noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Note not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if _, err := h.bookmarkRepository.GetBookmark(currentUserID, noteID); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Note already bookmarked")
	}

	bookmark := &models.Bookmark{UserID: currentUserID, NoteID: noteID}
	if err := h.bookmarkRepository.CreateBookmark(bookmark); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Note already bookmarked")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create bookmark")
	}

	return c.JSON(http.StatusCreated, bookmark)
}

// GetBookmarks lists the caller's bookmarks, newest first
func (h *BookmarkHandler) GetBookmarks(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	bookmarks, err := h.bookmarkRepository.GetBookmarksByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, bookmarks)
}

// CheckBookmark reports whether the caller has bookmarked a note. Anonymous
// callers simply get bookmarked:false.
func (h *BookmarkHandler) CheckBookmark(c echo.Context) error {
	noteID, err := strconv.ParseUint(c.QueryParam("note_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "note_id query parameter is required")
	}

	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return c.JSON(http.StatusOK, echo.Map{"bookmarked": false})
	}

	bookmark, err := h.bookmarkRepository.GetBookmark(currentUserID, uint(noteID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"bookmarked": false})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"bookmarked": true, "bookmark_id": bookmark.ID})
}

// DeleteBookmark removes one of the caller's bookmarks. The delete is scoped
// to the caller's own rows, so a bookmark owned by someone else is simply not
// touched; the response is {success:true} either way.
func (h *BookmarkHandler) DeleteBookmark(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	bookmarkID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid bookmark ID")
	}

	if _, err := h.bookmarkRepository.DeleteOwnedBookmark(currentUserID, bookmarkID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete bookmark")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
