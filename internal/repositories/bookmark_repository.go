package repositories

import (
	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark operations
type BookmarkRepository interface {
	CreateBookmark(bookmark *models.Bookmark) error
	GetBookmark(userID, noteID uint) (*models.Bookmark, error)
	GetBookmarksByUser(userID uint) ([]models.Bookmark, error)
	DeleteOwnedBookmark(userID, bookmarkID uint) (int64, error)
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) CreateBookmark(bookmark *models.Bookmark) error {
	return r.db.Create(bookmark).Error
}

func (r *PostgresBookmarkRepository) GetBookmark(userID, noteID uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	if err := r.db.Where("user_id = ? AND note_id = ?", userID, noteID).First(&bookmark).Error; err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *PostgresBookmarkRepository) GetBookmarksByUser(userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&bookmarks).Error
	return bookmarks, err
}

// DeleteOwnedBookmark deletes the bookmark only if it belongs to the caller.
// Returns the number of rows affected; zero rows is not an error, the handler
// decides how to report it.
func (r *PostgresBookmarkRepository) DeleteOwnedBookmark(userID, bookmarkID uint) (int64, error) {
	res := r.db.Where("id = ? AND user_id = ?", bookmarkID, userID).Delete(&models.Bookmark{})
	return res.RowsAffected, res.Error
}
