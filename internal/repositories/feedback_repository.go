package repositories

import (
	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FeedbackRepository defines the interface for dish feedback operations
type FeedbackRepository interface {
	UpsertFeedback(feedback *models.DishFeedback) error
	GetFeedback(dishID, userID uint) (*models.DishFeedback, error)
	GetFeedbackByDishID(dishID uint) ([]models.DishFeedback, error)
}

// PostgresFeedbackRepository implements FeedbackRepository for PostgreSQL
type PostgresFeedbackRepository struct {
	db *gorm.DB
}

// NewPostgresFeedbackRepository creates a new PostgresFeedbackRepository
func NewPostgresFeedbackRepository(db *gorm.DB) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{db: db}
}

// UpsertFeedback inserts feedback or, when a row for (dish, user) already
// exists, overwrites it in place. The unique index on the pair makes this a
// single atomic statement rather than a check-then-write.
func (r *PostgresFeedbackRepository) UpsertFeedback(feedback *models.DishFeedback) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dish_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "content", "tags", "updated_at"}),
	}).Create(feedback).Error
}

func (r *PostgresFeedbackRepository) GetFeedback(dishID, userID uint) (*models.DishFeedback, error) {
	var feedback models.DishFeedback
	if err := r.db.Where("dish_id = ? AND user_id = ?", dishID, userID).First(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *PostgresFeedbackRepository) GetFeedbackByDishID(dishID uint) ([]models.DishFeedback, error) {
	var feedback []models.DishFeedback
	if err := r.db.Where("dish_id = ?", dishID).Order("updated_at DESC").Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}
