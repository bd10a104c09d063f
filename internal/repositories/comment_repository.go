package repositories

import (
	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByNoteID(noteID uint) ([]models.Comment, error)
	UpdateComment(comment *models.Comment) error
	DeleteCommentWithReplies(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a comment and increments the note's comments_count in
// the same transaction
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.TastingNote{}).
			Where("id = ?", comment.NoteID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByNoteID retrieves all comments for a specific note, oldest first
func (r *PostgresCommentRepository) GetCommentsByNoteID(noteID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("note_id = ?", noteID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateComment updates an existing comment in PostgreSQL
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteCommentWithReplies deletes a comment and its replies, decrementing the
// note's comments_count by the number of removed rows in one transaction
func (r *PostgresCommentRepository) DeleteCommentWithReplies(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			return err
		}

		replies := tx.Where("parent_id = ?", id).Delete(&models.Comment{})
		if replies.Error != nil {
			return replies.Error
		}
		res := tx.Delete(&models.Comment{}, id)
		if res.Error != nil {
			return res.Error
		}

		removed := replies.RowsAffected + res.RowsAffected
		if removed == 0 {
			return nil
		}
		return tx.Model(&models.TastingNote{}).
			Where("id = ? AND comments_count >= ?", comment.NoteID, removed).
			UpdateColumn("comments_count", gorm.Expr("comments_count - ?", removed)).Error
	})
}
