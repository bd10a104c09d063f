package repositories

import (
	"testing"

	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database migrated with all models.
// TranslateError is on, matching the production connection, so unique-index
// violations surface as gorm.ErrDuplicatedKey in tests too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Dish{},
		&models.DishFeedback{},
		&models.TastingNote{},
		&models.Like{},
		&models.Bookmark{},
		&models.Comment{},
		&models.FriendRequest{},
		&models.Follow{},
		&models.Group{},
		&models.GroupMember{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestNote(t *testing.T, db *gorm.DB, userID uint) *models.TastingNote {
	t.Helper()
	note := &models.TastingNote{UserID: userID, Title: "Masala dosa at Surya", Content: "Crisp, properly fermented batter."}
	if err := db.Create(note).Error; err != nil {
		t.Fatalf("create note: %v", err)
	}
	return note
}
