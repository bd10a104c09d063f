package repositories

import (
	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/gorm"
)

// GroupRepository defines the interface for group and membership operations
type GroupRepository interface {
	CreateGroup(group *models.Group, creatorID uint) error
	GetGroupByID(id uint) (*models.Group, error)
	GetGroupByInviteCode(code string) (*models.Group, error)
	GetGroupsByUser(userID uint) ([]models.Group, error)
	AddMember(member *models.GroupMember) error
	IsMember(groupID, userID uint) (bool, error)
}

// PostgresGroupRepository implements GroupRepository for PostgreSQL
type PostgresGroupRepository struct {
	db *gorm.DB
}

func NewPostgresGroupRepository(db *gorm.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

// CreateGroup creates the group and its first membership (the creator as
// group admin) in one transaction
func (r *PostgresGroupRepository) CreateGroup(group *models.Group, creatorID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		return tx.Create(&models.GroupMember{
			GroupID: group.ID,
			UserID:  creatorID,
			Role:    models.GroupRoleAdmin,
		}).Error
	})
}

func (r *PostgresGroupRepository) GetGroupByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *PostgresGroupRepository) GetGroupByInviteCode(code string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("invite_code = ?", code).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *PostgresGroupRepository) GetGroupsByUser(userID uint) ([]models.Group, error) {
	var groups []models.Group
	memberOf := r.db.Table("group_members").Select("group_id").Where("user_id = ?", userID)
	err := r.db.Where("id IN (?)", memberOf).Order("created_at DESC").Find(&groups).Error
	return groups, err
}

func (r *PostgresGroupRepository) AddMember(member *models.GroupMember) error {
	return r.db.Create(member).Error
}

func (r *PostgresGroupRepository) IsMember(groupID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}
