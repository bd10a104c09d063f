package repositories

import (
	"errors"

	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/gorm"
)

// Sentinel errors for duplicate friendship edges, so handlers can tell a
// conflict apart from a storage failure
var (
	ErrFriendRequestPending = errors.New("a pending friend request already exists between these users")
	ErrAlreadyFriends       = errors.New("users are already friends")
)

// FriendshipRepository defines the interface for friendship data operations
type FriendshipRepository interface {
	SendFriendRequest(req *models.FriendRequest) error
	GetFriendRequestByID(id uint) (*models.FriendRequest, error)
	GetFriendRequestBySenderReceiver(senderID, receiverID uint) (*models.FriendRequest, error)
	GetUserPendingFriendRequests(userID uint) ([]models.FriendRequest, error)
	GetUserFriends(userID uint) ([]models.User, error)
	UpdateFriendRequestStatus(id uint, status string) error
	DeleteFriendRequest(id uint) error
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// SendFriendRequest creates a new friend request unless an edge between the
// two users already exists in either direction. The reverse-direction check is
// a read; the same-direction case is also backed by the unique index on
// (sender, receiver), which decides a race between two concurrent sends.
func (r *PostgresFriendshipRepository) SendFriendRequest(req *models.FriendRequest) error {
	var existing models.FriendRequest
	err := r.db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		req.SenderID, req.ReceiverID, req.ReceiverID, req.SenderID).First(&existing).Error

	if err == nil {
		switch existing.Status {
		case models.FriendStatusAccepted:
			return ErrAlreadyFriends
		case models.FriendStatusPending:
			return ErrFriendRequestPending
		}
		// A rejected edge can be retried; reuse the row so the unique index
		// keeps a single edge per pair
		existing.SenderID = req.SenderID
		existing.ReceiverID = req.ReceiverID
		existing.Status = models.FriendStatusPending
		if err := r.db.Save(&existing).Error; err != nil {
			return err
		}
		*req = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	req.Status = models.FriendStatusPending
	if err := r.db.Create(req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrFriendRequestPending
		}
		return err
	}
	return nil
}

// GetFriendRequestByID retrieves a friend request by ID
func (r *PostgresFriendshipRepository) GetFriendRequestByID(id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// GetFriendRequestBySenderReceiver retrieves a friend request by sender and receiver IDs
func (r *PostgresFriendshipRepository) GetFriendRequestBySenderReceiver(senderID, receiverID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := r.db.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// GetUserPendingFriendRequests retrieves all pending friend requests addressed to a user
func (r *PostgresFriendshipRepository) GetUserPendingFriendRequests(userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := r.db.Where("receiver_id = ? AND status = ?", userID, models.FriendStatusPending).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// GetUserFriends retrieves all accepted friends for a user
func (r *PostgresFriendshipRepository) GetUserFriends(userID uint) ([]models.User, error) {
	var friends []models.User
	subQuery1 := r.db.Table("friend_requests").Select("receiver_id").
		Where("sender_id = ? AND status = ?", userID, models.FriendStatusAccepted)
	subQuery2 := r.db.Table("friend_requests").Select("sender_id").
		Where("receiver_id = ? AND status = ?", userID, models.FriendStatusAccepted)

	if err := r.db.Where("id IN (?) OR id IN (?)", subQuery1, subQuery2).Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}

// UpdateFriendRequestStatus updates the status of a friend request
func (r *PostgresFriendshipRepository) UpdateFriendRequestStatus(id uint, status string) error {
	return r.db.Model(&models.FriendRequest{}).Where("id = ?", id).Update("status", status).Error
}

// DeleteFriendRequest deletes a friend request
func (r *PostgresFriendshipRepository) DeleteFriendRequest(id uint) error {
	return r.db.Delete(&models.FriendRequest{}, id).Error
}
