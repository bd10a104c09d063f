package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
)

func newFriendshipHandlerForTest(t *testing.T) (*FriendshipHandler, *testDeps) {
	t.Helper()
	db := newTestDB(t)
	deps := &testDeps{
		db:               db,
		userRepo:         repositories.NewPostgresUserRepository(db),
		notificationRepo: repositories.NewPostgresNotificationRepository(db),
	}
	h := NewFriendshipHandler(repositories.NewPostgresFriendshipRepository(db), deps.userRepo, deps.notificationRepo)
	return h, deps
}

func TestSendFriendRequestDuplicateIsConflict(t *testing.T) {
	h, deps := newFriendshipHandlerForTest(t)

	sender := &models.User{Name: "Sender", Email: "sender@example.com"}
	mustCreate(t, deps.db, sender)
	receiver := &models.User{Name: "Receiver", Email: "receiver@example.com"}
	mustCreate(t, deps.db, receiver)

	body := fmt.Sprintf(`{"receiver_id":%d}`, receiver.ID)
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/friends/request", body, claimsFor(sender))
	if err := h.SendFriendRequest(c); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	// Same direction again
	c, _ = newTestContext(t, http.MethodPost, "/api/v1/friends/request", body, claimsFor(sender))
	err := h.SendFriendRequest(c)
	if err == nil {
		t.Fatal("duplicate request should fail")
	}
	if code := httpErrorCode(t, err); code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", code)
	}

	// Reverse direction while the first is pending
	reverse := fmt.Sprintf(`{"receiver_id":%d}`, sender.ID)
	c, _ = newTestContext(t, http.MethodPost, "/api/v1/friends/request", reverse, claimsFor(receiver))
	err = h.SendFriendRequest(c)
	if err == nil {
		t.Fatal("reverse duplicate should fail")
	}
	if code := httpErrorCode(t, err); code != http.StatusConflict {
		t.Errorf("reverse duplicate status = %d, want 409", code)
	}

	var count int64
	if err := deps.db.Model(&models.FriendRequest{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("friend request rows = %d, want 1", count)
	}
}

func TestSendFriendRequestStorageFailureIsNotConflict(t *testing.T) {
	h, deps := newFriendshipHandlerForTest(t)

	sender := &models.User{Name: "Sender", Email: "sender@example.com"}
	mustCreate(t, deps.db, sender)
	receiver := &models.User{Name: "Receiver", Email: "receiver@example.com"}
	mustCreate(t, deps.db, receiver)

	if err := deps.db.Migrator().DropTable(&models.FriendRequest{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	body := fmt.Sprintf(`{"receiver_id":%d}`, receiver.ID)
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/friends/request", body, claimsFor(sender))
	err := h.SendFriendRequest(c)
	if err == nil {
		t.Fatal("expected an error once storage is gone")
	}
	if code := httpErrorCode(t, err); code != http.StatusInternalServerError {
		t.Errorf("storage failure status = %d, want 500", code)
	}
}

func TestSendFriendRequestRetryAfterRejection(t *testing.T) {
	h, deps := newFriendshipHandlerForTest(t)

	sender := &models.User{Name: "Sender", Email: "sender@example.com"}
	mustCreate(t, deps.db, sender)
	receiver := &models.User{Name: "Receiver", Email: "receiver@example.com"}
	mustCreate(t, deps.db, receiver)

	repo := repositories.NewPostgresFriendshipRepository(deps.db)
	first := &models.FriendRequest{SenderID: sender.ID, ReceiverID: receiver.ID}
	if err := repo.SendFriendRequest(first); err != nil {
		t.Fatalf("seed request: %v", err)
	}
	if err := repo.UpdateFriendRequestStatus(first.ID, models.FriendStatusRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}

	body := fmt.Sprintf(`{"receiver_id":%d}`, receiver.ID)
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/friends/request", body, claimsFor(sender))
	if err := h.SendFriendRequest(c); err != nil {
		t.Fatalf("retry after rejection: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var count int64
	if err := deps.db.Model(&models.FriendRequest{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("friend request rows = %d, want a single reused edge", count)
	}
	pending, err := repo.GetFriendRequestBySenderReceiver(sender.ID, receiver.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if pending.Status != models.FriendStatusPending {
		t.Errorf("status = %q, want pending again", pending.Status)
	}
}
