package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
)

func TestSetHandleRejectsBadFormatBeforeStorage(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(repositories.NewPostgresUserRepository(db))

	claims := &models.JwtCustomClaims{UserID: 1, Email: "new@example.com"}
	for _, bad := range []string{"AB", "ab", "has space", "UPPER", "way-too-long-for-a-handle-here", "emoji🙂"} {
		c, _ := newTestContext(t, http.MethodPost, "/api/v1/users/set-handle", `{"handle":"`+bad+`"}`, claims)
		err := h.SetHandle(c)
		if err == nil {
			t.Errorf("handle %q: expected an error", bad)
			continue
		}
		if code := httpErrorCode(t, err); code != http.StatusBadRequest {
			t.Errorf("handle %q: status = %d, want 400", bad, code)
		}
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 0 {
		t.Errorf("users created by rejected requests = %d, want 0", count)
	}
}

func TestSetHandleCreatesUserAndCheckHandleAgrees(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresUserRepository(db)
	h := NewUserHandler(repo)

	// Before claiming, the handle reads as available
	c, rec := newTestContext(t, http.MethodGet, "/api/v1/users/check-handle?handle=foodie_01", "", nil)
	if err := h.CheckHandle(c); err != nil {
		t.Fatalf("CheckHandle: %v", err)
	}
	var check map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &check); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !check["available"] {
		t.Error("fresh handle should be available")
	}

	claims := &models.JwtCustomClaims{UserID: 1, Email: "new@example.com"}
	c, rec = newTestContext(t, http.MethodPost, "/api/v1/users/set-handle", `{"handle":"foodie_01","name":"Asha"}`, claims)
	if err := h.SetHandle(c); err != nil {
		t.Fatalf("SetHandle: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	user, err := repo.GetUserByEmail("new@example.com")
	if err != nil {
		t.Fatalf("user row not created: %v", err)
	}
	if user.Handle == nil || *user.Handle != "foodie_01" {
		t.Errorf("stored handle = %v, want foodie_01", user.Handle)
	}

	// After claiming, check-handle flips to unavailable
	c, rec = newTestContext(t, http.MethodGet, "/api/v1/users/check-handle?handle=foodie_01", "", nil)
	if err := h.CheckHandle(c); err != nil {
		t.Fatalf("CheckHandle: %v", err)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &check); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if check["available"] {
		t.Error("claimed handle should not be available")
	}
}

func TestSetHandleConflict(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresUserRepository(db)
	h := NewUserHandler(repo)

	first := &models.JwtCustomClaims{UserID: 1, Email: "first@example.com"}
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/users/set-handle", `{"handle":"spicehunter"}`, first)
	if err := h.SetHandle(c); err != nil {
		t.Fatalf("first SetHandle: %v", err)
	}

	second := &models.JwtCustomClaims{UserID: 2, Email: "second@example.com"}
	c, _ = newTestContext(t, http.MethodPost, "/api/v1/users/set-handle", `{"handle":"spicehunter"}`, second)
	err := h.SetHandle(c)
	if err == nil {
		t.Fatal("second claim on the same handle should fail")
	}
	if code := httpErrorCode(t, err); code != http.StatusConflict {
		t.Errorf("status = %d, want 409", code)
	}
}

func TestSearchUsersQueryLengthCountsRunes(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(repositories.NewPostgresUserRepository(db))
	claims := &models.JwtCustomClaims{UserID: 1, Email: "caller@example.com"}

	// One rune, two bytes: still too short
	c, _ := newTestContext(t, http.MethodGet, "/api/v1/users/search?q=%C3%A9", "", claims)
	err := h.SearchUsers(c)
	if err == nil {
		t.Fatal("single-rune query should be rejected")
	}
	if code := httpErrorCode(t, err); code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}

	// Two runes pass the length rule
	c, rec := newTestContext(t, http.MethodGet, "/api/v1/users/search?q=%C3%A9t", "", claims)
	if err := h.SearchUsers(c); err != nil {
		t.Fatalf("two-rune query: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCheckHandleInvalidFormatIsUnavailable(t *testing.T) {
	db := newTestDB(t)
	h := NewUserHandler(repositories.NewPostgresUserRepository(db))

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/users/check-handle?handle=AB", "", nil)
	if err := h.CheckHandle(c); err != nil {
		t.Fatalf("CheckHandle: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var check map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &check); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if check["available"] {
		t.Error("invalid format should read as unavailable, not as an error")
	}
}
