package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
)

func TestFollowUserDuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	followRepo := repositories.NewPostgresFollowRepository(db)
	userRepo := repositories.NewPostgresUserRepository(db)
	notifRepo := repositories.NewPostgresNotificationRepository(db)
	h := NewFollowHandler(followRepo, userRepo, notifRepo)

	follower := &models.User{Name: "Follower", Email: "follower@example.com"}
	mustCreate(t, db, follower)
	target := &models.User{Name: "Target", Email: "target@example.com"}
	mustCreate(t, db, target)

	c, rec := newTestContext(t, http.MethodPost, "/", "", claimsFor(follower))
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(target.ID)))
	if err := h.FollowUser(c); err != nil {
		t.Fatalf("first follow: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	following, err := followRepo.IsFollowing(follower.ID, target.ID)
	if err != nil {
		t.Fatalf("IsFollowing: %v", err)
	}
	if !following {
		t.Error("follow edge should exist")
	}

	// Second follow hits the unique index and surfaces as Conflict, not 500
	c, _ = newTestContext(t, http.MethodPost, "/", "", claimsFor(follower))
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(target.ID)))
	err = h.FollowUser(c)
	if err == nil {
		t.Fatal("duplicate follow should fail")
	}
	if code := httpErrorCode(t, err); code != http.StatusConflict {
		t.Errorf("duplicate follow status = %d, want 409", code)
	}

	var count int64
	if err := db.Model(&models.Follow{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("follow rows = %d, want 1", count)
	}
}
