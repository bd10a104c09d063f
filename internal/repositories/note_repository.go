package repositories

import (
	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/gorm"
)

// NoteRepository defines the interface for tasting note data operations
type NoteRepository interface {
	CreateNote(note *models.TastingNote) error
	GetNoteByID(id uint) (*models.TastingNote, error)
	GetNotes(offset, limit int) ([]models.TastingNote, int64, error)
	GetNotesByUserID(userID uint, offset, limit int) ([]models.TastingNote, error)
	DeleteNote(id uint) error
}

// PostgresNoteRepository implements NoteRepository for PostgreSQL
type PostgresNoteRepository struct {
	db *gorm.DB
}

// NewPostgresNoteRepository creates a new PostgresNoteRepository
func NewPostgresNoteRepository(db *gorm.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{db: db}
}

func (r *PostgresNoteRepository) CreateNote(note *models.TastingNote) error {
	return r.db.Create(note).Error
}

func (r *PostgresNoteRepository) GetNoteByID(id uint) (*models.TastingNote, error) {
	var note models.TastingNote
	if err := r.db.First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// GetNotes returns a newest-first page of notes plus the total count
func (r *PostgresNoteRepository) GetNotes(offset, limit int) ([]models.TastingNote, int64, error) {
	var notes []models.TastingNote
	var total int64

	if err := r.db.Model(&models.TastingNote{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&notes).Error
	return notes, total, err
}

func (r *PostgresNoteRepository) GetNotesByUserID(userID uint, offset, limit int) ([]models.TastingNote, error) {
	var notes []models.TastingNote
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&notes).Error
	return notes, err
}

// DeleteNote removes the note together with its likes, bookmarks and comments
// in one transaction, so no edge rows are left dangling
func (r *PostgresNoteRepository) DeleteNote(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", id).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TastingNote{}, id).Error
	})
}
