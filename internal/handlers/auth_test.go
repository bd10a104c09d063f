package handlers

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
)

func TestResolveFirebaseUserRecreatedIdentityLosesOnboarding(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresUserRepository(db)
	h := NewAuthHandler(repo, nil)

	handle := "foodie_01"
	oldUID := "uid-old"
	existing := &models.User{
		Name:        "Asha",
		Email:       "asha@example.com",
		Handle:      &handle,
		FirebaseUID: &oldUID,
	}
	mustCreate(t, db, existing)

	// Same e-mail shows up under a new provider UID: the external account was
	// deleted and recreated
	user, err := h.resolveFirebaseUser("uid-new", "asha@example.com", "Asha")
	if err != nil {
		t.Fatalf("resolveFirebaseUser: %v", err)
	}
	if user.ID != existing.ID {
		t.Fatalf("resolved user %d, want existing record %d", user.ID, existing.ID)
	}
	if user.FirebaseUID == nil || *user.FirebaseUID != oldUID {
		t.Errorf("stored firebase UID = %v, want %q untouched at login", user.FirebaseUID, oldUID)
	}
	if user.HasHandle("uid-new") {
		t.Error("recreated identity must not count as onboarded")
	}

	// The issued session token carries the same verdict
	token, err := h.generateJWT(user, "uid-new")
	if err != nil {
		t.Fatalf("generateJWT: %v", err)
	}
	claims := &models.JwtCustomClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(h.jwtSecret), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.HasHandle {
		t.Error("session claim has_handle must be false for a recreated identity")
	}

	// Claiming a handle again is what relinks the UID
	c, _ := newTestContext(t, http.MethodPost, "/api/v1/users/set-handle", `{"handle":"foodie_01"}`,
		&models.JwtCustomClaims{UserID: existing.ID, Email: "asha@example.com", FirebaseUID: "uid-new"})
	uh := NewUserHandler(repo)
	if err := uh.SetHandle(c); err != nil {
		t.Fatalf("SetHandle: %v", err)
	}
	relinked, err := repo.GetUserByEmail("asha@example.com")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if relinked.FirebaseUID == nil || *relinked.FirebaseUID != "uid-new" {
		t.Errorf("firebase UID after set-handle = %v, want uid-new", relinked.FirebaseUID)
	}
	if !relinked.HasHandle("uid-new") {
		t.Error("account should read as onboarded once the handle is claimed again")
	}
}

func TestResolveFirebaseUserByUIDAndFreshIdentity(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPostgresUserRepository(db)
	h := NewAuthHandler(repo, nil)

	// Brand-new identity gets a record without a handle
	user, err := h.resolveFirebaseUser("uid-1", "new@example.com", "New Diner")
	if err != nil {
		t.Fatalf("resolveFirebaseUser: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("fresh identity should get a stored record")
	}
	if user.Handle != nil {
		t.Errorf("fresh identity handle = %v, want none", user.Handle)
	}
	if user.HasHandle("uid-1") {
		t.Error("fresh identity must not count as onboarded")
	}

	// Matching UID resolves to the same record and refreshes the display name
	again, err := h.resolveFirebaseUser("uid-1", "new@example.com", "Renamed Diner")
	if err != nil {
		t.Fatalf("resolveFirebaseUser second login: %v", err)
	}
	if again.ID != user.ID {
		t.Errorf("second login resolved user %d, want %d", again.ID, user.ID)
	}
	if again.Name != "Renamed Diner" {
		t.Errorf("name = %q, want refreshed display name", again.Name)
	}
}
