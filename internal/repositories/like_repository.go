package repositories

import (
	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(noteID, userID uint) (bool, error)
	HasUserLikedNote(noteID, userID uint) (bool, error)
	GetLikedNoteIDs(userID uint, noteIDs []uint) (map[uint]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleLike removes the (note, user) like edge if it exists, otherwise
// creates it. The edge mutation and the likes_count adjustment run in one
// transaction, and the counter moves via an atomic SQL expression so two
// racing toggles on the same note cannot lose an update. Returns whether the
// note is liked after the call.
func (r *PostgresLikeRepository) ToggleLike(noteID, userID uint) (bool, error) {
	var liked bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("note_id = ? AND user_id = ?", noteID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return tx.Model(&models.TastingNote{}).
				Where("id = ? AND likes_count > 0", noteID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
		}

		if err := tx.Create(&models.Like{NoteID: noteID, UserID: userID}).Error; err != nil {
			return err
		}
		liked = true
		return tx.Model(&models.TastingNote{}).
			Where("id = ?", noteID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
	return liked, err
}

// HasUserLikedNote checks if a user has liked a specific note
func (r *PostgresLikeRepository) HasUserLikedNote(noteID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("note_id = ? AND user_id = ?", noteID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikedNoteIDs returns which of the given notes the user has liked
func (r *PostgresLikeRepository) GetLikedNoteIDs(userID uint, noteIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(noteIDs) == 0 {
		return result, nil
	}
	var likes []models.Like
	if err := r.db.Where("user_id = ? AND note_id IN ?", userID, noteIDs).Find(&likes).Error; err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.NoteID] = true
	}
	return result, nil
}
