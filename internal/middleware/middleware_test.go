package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/gorm"
)

func newContextWithClaims(claims *models.JwtCustomClaims) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if claims != nil {
		c.Set("user", claims)
	}
	return c
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole(models.RoleAdmin)

	// Admin passes
	c := newContextWithClaims(&models.JwtCustomClaims{UserID: 1, Role: models.RoleAdmin})
	if err := mw(okHandler)(c); err != nil {
		t.Errorf("admin should pass: %v", err)
	}

	// Plain user is rejected
	c = newContextWithClaims(&models.JwtCustomClaims{UserID: 2, Role: models.RoleUser})
	err := mw(okHandler)(c)
	if err == nil {
		t.Fatal("user role should be rejected")
	}
	if code := statusOf(t, err); code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", code)
	}

	// No session at all
	c = newContextWithClaims(nil)
	err = mw(okHandler)(c)
	if err == nil {
		t.Fatal("anonymous caller should be rejected")
	}
	if code := statusOf(t, err); code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}

// stubUserRepo serves a single user for onboarding-gate tests
type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) CreateUser(*models.User) error { return errors.New("not implemented") }
func (s *stubUserRepo) GetUserByID(id uint) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) GetUserByEmail(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) GetUserByFirebaseUID(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) GetUserByHandle(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) UpdateUser(*models.User) error { return errors.New("not implemented") }
func (s *stubUserRepo) SearchUsers(string, uint) ([]models.User, error) {
	return nil, nil
}

func TestRequireHandle(t *testing.T) {
	handle := "foodie_01"
	uid := "firebase-uid-1"
	onboarded := &models.User{ID: 1, Email: "a@example.com", Handle: &handle, FirebaseUID: &uid}

	// Cached claim short-circuits without a lookup
	mw := RequireHandle(&stubUserRepo{})
	c := newContextWithClaims(&models.JwtCustomClaims{UserID: 1, HasHandle: true})
	if err := mw(okHandler)(c); err != nil {
		t.Errorf("cached has_handle should pass: %v", err)
	}

	// Stale claim falls back to the live record
	mw = RequireHandle(&stubUserRepo{user: onboarded})
	c = newContextWithClaims(&models.JwtCustomClaims{UserID: 1, FirebaseUID: uid})
	if err := mw(okHandler)(c); err != nil {
		t.Errorf("live lookup should pass for onboarded user: %v", err)
	}

	// No handle claimed yet
	noHandle := &models.User{ID: 2, Email: "b@example.com"}
	mw = RequireHandle(&stubUserRepo{user: noHandle})
	c = newContextWithClaims(&models.JwtCustomClaims{UserID: 2})
	err := mw(okHandler)(c)
	if err == nil {
		t.Fatal("user without a handle should be rejected")
	}
	if code := statusOf(t, err); code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", code)
	}

	// Identity recreated under the same e-mail: stored UID no longer matches
	mw = RequireHandle(&stubUserRepo{user: onboarded})
	c = newContextWithClaims(&models.JwtCustomClaims{UserID: 1, FirebaseUID: "different-uid"})
	err = mw(okHandler)(c)
	if err == nil {
		t.Fatal("recreated identity should be forced back through onboarding")
	}
	if code := statusOf(t, err); code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", code)
	}
}
