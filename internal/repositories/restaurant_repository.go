package repositories

import (
	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/gorm"
)

// RestaurantRepository defines the interface for restaurant data operations
type RestaurantRepository interface {
	CreateRestaurant(restaurant *models.Restaurant) error
	GetRestaurantByID(id uint) (*models.Restaurant, error)
	GetRestaurantByName(name string) (*models.Restaurant, error)
	GetRestaurants(verifiedOnly bool) ([]models.Restaurant, error)
	UpdateRestaurant(restaurant *models.Restaurant) error
	SetVerified(id uint, verified bool) error
}

// PostgresRestaurantRepository implements RestaurantRepository for PostgreSQL
type PostgresRestaurantRepository struct {
	db *gorm.DB
}

// NewPostgresRestaurantRepository creates a new PostgresRestaurantRepository
func NewPostgresRestaurantRepository(db *gorm.DB) *PostgresRestaurantRepository {
	return &PostgresRestaurantRepository{db: db}
}

func (r *PostgresRestaurantRepository) CreateRestaurant(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

func (r *PostgresRestaurantRepository) GetRestaurantByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// GetRestaurantByName looks up a restaurant by name, case-insensitively.
// Used as the duplicate-name check before a suggestion is accepted.
func (r *PostgresRestaurantRepository) GetRestaurantByName(name string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *PostgresRestaurantRepository) GetRestaurants(verifiedOnly bool) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	q := r.db.Order("created_at DESC")
	if verifiedOnly {
		q = q.Where("is_verified = ?", true)
	}
	if err := q.Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *PostgresRestaurantRepository) UpdateRestaurant(restaurant *models.Restaurant) error {
	return r.db.Save(restaurant).Error
}

func (r *PostgresRestaurantRepository) SetVerified(id uint, verified bool) error {
	return r.db.Model(&models.Restaurant{}).Where("id = ?", id).Update("is_verified", verified).Error
}
