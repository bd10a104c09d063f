package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
	"gorm.io/gorm"
)

// NoteHandler handles tasting note HTTP requests
type NoteHandler struct {
	noteRepository     repositories.NoteRepository
	userRepository     repositories.UserRepository
	likeRepository     repositories.LikeRepository
	bookmarkRepository repositories.BookmarkRepository
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(
	noteRepo repositories.NoteRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	bookmarkRepo repositories.BookmarkRepository,
) *NoteHandler {
	return &NoteHandler{
		noteRepository:     noteRepo,
		userRepository:     userRepo,
		likeRepository:     likeRepo,
		bookmarkRepository: bookmarkRepo,
	}
}

// RegisterNoteRoutes registers tasting note routes
func (h *NoteHandler) RegisterNoteRoutes(g *echo.Group) {
	g.POST("/notes", h.CreateNote)
	g.GET("/notes", h.GetNotes)
	g.GET("/notes/:id", h.GetNote)
	g.DELETE("/notes/:id", h.DeleteNote)
}

// EnrichedNote is a tasting note with author info and caller-specific flags
type EnrichedNote struct {
	models.TastingNote
	Author       models.UserCompact `json:"author"`
	IsLiked      bool               `json:"is_liked"`
	IsBookmarked bool               `json:"is_bookmarked"`
}

// CreateNote posts a new tasting note
func (h *NoteHandler) CreateNote(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note := &models.TastingNote{
		UserID:       currentUserID,
		RestaurantID: req.RestaurantID,
		DishID:       req.DishID,
		Title:        req.Title,
		Content:      req.Content,
		Rating:       req.Rating,
	}

	if err := h.noteRepository.CreateNote(note); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create note")
	}

	return c.JSON(http.StatusCreated, note)
}

// GetNotes returns an enriched, newest-first page of tasting notes
func (h *NoteHandler) GetNotes(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	notes, total, err := h.noteRepository.GetNotes((page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	noteIDs := make([]uint, len(notes))
	authorIDs := make(map[uint]bool)
	for i, n := range notes {
		noteIDs[i] = n.ID
		authorIDs[n.UserID] = true
	}

	authorMap := make(map[uint]models.UserCompact)
	for id := range authorIDs {
		if user, err := h.userRepository.GetUserByID(id); err == nil {
			authorMap[id] = user.ToCompact()
		}
	}

	likedMap := make(map[uint]bool)
	bookmarkedMap := make(map[uint]bool)
	if currentUserID > 0 {
		likedMap, _ = h.likeRepository.GetLikedNoteIDs(currentUserID, noteIDs)
		for _, id := range noteIDs {
			if _, err := h.bookmarkRepository.GetBookmark(currentUserID, id); err == nil {
				bookmarkedMap[id] = true
			}
		}
	}

	enriched := make([]EnrichedNote, len(notes))
	for i, n := range notes {
		enriched[i] = EnrichedNote{
			TastingNote:  n,
			Author:       authorMap[n.UserID],
			IsLiked:      likedMap[n.ID],
			IsBookmarked: bookmarkedMap[n.ID],
		}
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notes": enriched,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      total,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

// GetNote returns a single tasting note
func (h *NoteHandler) GetNote(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid note ID")
	}
	note, err := h.noteRepository.GetNoteByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Note not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, note)
}

// DeleteNote deletes a note; only the author or an admin may do so
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid note ID")
	}

	note, err := h.noteRepository.GetNoteByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Note not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if note.UserID != claims.UserID && claims.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to delete this note")
	}

	if err := h.noteRepository.DeleteNote(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete note")
	}
	return c.NoContent(http.StatusNoContent)
}
