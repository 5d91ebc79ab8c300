package auth

import (
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/domain/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	store := NewUserStore()

	user, err := store.Register("Laura", "Laura@Uni.Edu", "3001234567", "secret123", "Driver")
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if user.ID == 0 || user.Email != "laura@uni.edu" || user.Role != models.RoleDriver {
		t.Fatalf("unexpected user %+v", user)
	}

	got, err := store.Authenticate("laura@uni.edu", "secret123")
	if err != nil {
		t.Fatalf("authenticate error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, got.ID)
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	store := NewUserStore()
	_, _ = store.Register("Laura", "laura@uni.edu", "", "secret123", models.RoleDriver)

	wrongPass, err1 := store.Authenticate("laura@uni.edu", "wrong")
	if !domain.IsUnauthorized(err1) {
		t.Fatalf("wrong password: expected unauthorized, got %v", err1)
	}
	_, err2 := store.Authenticate("nobody@uni.edu", "secret123")
	if !domain.IsUnauthorized(err2) {
		t.Fatalf("unknown email: expected unauthorized, got %v", err2)
	}
	// Unknown email and wrong password answer identically.
	if err1.Error() != err2.Error() {
		t.Fatalf("error messages differ: %q vs %q", err1, err2)
	}
	if wrongPass.ID != 0 {
		t.Fatalf("failed login must not leak the account")
	}
}

func TestRegisterValidation(t *testing.T) {
	store := NewUserStore()

	if _, err := store.Register("x", "", "", "pw", models.RoleDriver); !domain.IsValidation(err) {
		t.Fatalf("empty email: expected validation error, got %v", err)
	}
	if _, err := store.Register("x", "x@uni.edu", "", "", models.RoleDriver); !domain.IsValidation(err) {
		t.Fatalf("empty password: expected validation error, got %v", err)
	}
	if _, err := store.Register("x", "x@uni.edu", "", "pw", "admin"); !domain.IsValidation(err) {
		t.Fatalf("unknown role: expected validation error, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := NewUserStore()
	_, _ = store.Register("Laura", "laura@uni.edu", "", "pw1", models.RoleDriver)

	if _, err := store.Register("Other", "LAURA@uni.edu", "", "pw2", models.RolePassenger); !domain.IsConflict(err) {
		t.Fatalf("duplicate email: expected conflict, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue(models.User{ID: 42, Role: models.RolePassenger})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	uid, role, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if uid != 42 || role != models.RolePassenger {
		t.Fatalf("expected 42/passenger, got %d/%s", uid, role)
	}
}

func TestTokenVerifyRejections(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	if _, _, err := tm.Verify("not-a-token"); !domain.IsUnauthorized(err) {
		t.Fatalf("garbage token: expected unauthorized, got %v", err)
	}

	other := NewTokenManager("different-secret", time.Hour)
	token, _ := other.Issue(models.User{ID: 1, Role: models.RoleDriver})
	if _, _, err := tm.Verify(token); !domain.IsUnauthorized(err) {
		t.Fatalf("foreign signature: expected unauthorized, got %v", err)
	}

	expired := NewTokenManager("test-secret", -time.Minute)
	token, _ = expired.Issue(models.User{ID: 1, Role: models.RoleDriver})
	if _, _, err := tm.Verify(token); !domain.IsUnauthorized(err) {
		t.Fatalf("expired token: expected unauthorized, got %v", err)
	}
}
