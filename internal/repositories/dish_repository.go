package repositories

import (
	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/gorm"
)

// DishRepository defines the interface for dish data operations
type DishRepository interface {
	CreateDish(dish *models.Dish) error
	GetDishByID(id uint) (*models.Dish, error)
	GetDishesByRestaurantID(restaurantID uint) ([]models.Dish, error)
	UpdateDish(dish *models.Dish) error
	DeleteDish(id uint) error
}

// PostgresDishRepository implements DishRepository for PostgreSQL
type PostgresDishRepository struct {
	db *gorm.DB
}

// NewPostgresDishRepository creates a new PostgresDishRepository
func NewPostgresDishRepository(db *gorm.DB) *PostgresDishRepository {
	return &PostgresDishRepository{db: db}
}

func (r *PostgresDishRepository) CreateDish(dish *models.Dish) error {
	return r.db.Create(dish).Error
}

func (r *PostgresDishRepository) GetDishByID(id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.First(&dish, id).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *PostgresDishRepository) GetDishesByRestaurantID(restaurantID uint) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := r.db.Where("restaurant_id = ?", restaurantID).Order("name ASC").Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *PostgresDishRepository) UpdateDish(dish *models.Dish) error {
	return r.db.Save(dish).Error
}

func (r *PostgresDishRepository) DeleteDish(id uint) error {
	return r.db.Delete(&models.Dish{}, id).Error
}
