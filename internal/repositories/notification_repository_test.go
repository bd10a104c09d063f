package repositories

import (
	"testing"
	"time"

	"github.com/rusi-notes/backend/internal/models"
)

func TestGetByRecipientIDNewestFirstAndScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	base := time.Now().Add(-time.Hour)
	rows := []models.Notification{
		{Type: models.NotificationTypeLike, ActorID: 2, RecipientID: 1, Title: "first", CreatedAt: base},
		{Type: models.NotificationTypeComment, ActorID: 3, RecipientID: 1, Title: "second", CreatedAt: base.Add(time.Minute)},
		{Type: models.NotificationTypeFollow, ActorID: 4, RecipientID: 1, Title: "third", CreatedAt: base.Add(2 * time.Minute)},
		{Type: models.NotificationTypeLike, ActorID: 2, RecipientID: 9, Title: "other inbox", CreatedAt: base},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := repo.GetByRecipientID(1, 50)
	if err != nil {
		t.Fatalf("GetByRecipientID: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("rows = %d, want 3", len(got))
	}
	if got[0].Title != "third" || got[2].Title != "first" {
		t.Errorf("want newest first, got order %q, %q, %q", got[0].Title, got[1].Title, got[2].Title)
	}

	limited, err := repo.GetByRecipientID(1, 2)
	if err != nil {
		t.Fatalf("GetByRecipientID limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited rows = %d, want 2", len(limited))
	}
}

func TestMarkAsReadScopedToRecipient(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	n := models.Notification{Type: models.NotificationTypeLike, ActorID: 2, RecipientID: 1, Title: "hi"}
	if err := db.Create(&n).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Wrong recipient is a silent no-op
	if err := repo.MarkAsRead(n.ID, 99); err != nil {
		t.Fatalf("MarkAsRead wrong recipient: %v", err)
	}
	count, err := repo.GetUnreadCount(1)
	if err != nil {
		t.Fatalf("GetUnreadCount: %v", err)
	}
	if count != 1 {
		t.Errorf("unread after foreign mark = %d, want 1", count)
	}

	if err := repo.MarkAsRead(n.ID, 1); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	count, err = repo.GetUnreadCount(1)
	if err != nil {
		t.Fatalf("GetUnreadCount: %v", err)
	}
	if count != 0 {
		t.Errorf("unread after mark = %d, want 0", count)
	}

	var reloaded models.Notification
	if err := db.First(&reloaded, n.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ReadAt == nil {
		t.Error("read_at should be set once read")
	}
}

func TestMarkAllAsRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	for i := 0; i < 3; i++ {
		n := models.Notification{Type: models.NotificationTypeComment, ActorID: 2, RecipientID: 1}
		if err := db.Create(&n).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	other := models.Notification{Type: models.NotificationTypeComment, ActorID: 2, RecipientID: 5}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := repo.MarkAllAsRead(1); err != nil {
		t.Fatalf("MarkAllAsRead: %v", err)
	}

	count, err := repo.GetUnreadCount(1)
	if err != nil {
		t.Fatalf("GetUnreadCount: %v", err)
	}
	if count != 0 {
		t.Errorf("unread = %d, want 0", count)
	}

	otherCount, err := repo.GetUnreadCount(5)
	if err != nil {
		t.Fatalf("GetUnreadCount other: %v", err)
	}
	if otherCount != 1 {
		t.Errorf("other recipient's unread = %d, want 1", otherCount)
	}
}

func TestDeleteNotificationScopedToRecipient(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	n := models.Notification{Type: models.NotificationTypeFollow, ActorID: 2, RecipientID: 1}
	if err := db.Create(&n).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	affected, err := repo.DeleteNotification(n.ID, 99)
	if err != nil {
		t.Fatalf("DeleteNotification wrong recipient: %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0 for foreign recipient", affected)
	}

	affected, err = repo.DeleteNotification(n.ID, 1)
	if err != nil {
		t.Fatalf("DeleteNotification: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}
}
