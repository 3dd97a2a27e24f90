package auth

import (
	"testing"
	"time"
)

func TestSessionManager_IssueAndValidateRoundTrip(t *testing.T) {
	mgr := NewSessionManager([]byte("test-secret"), time.Hour)
	token, exp, err := mgr.Issue("astra")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if exp.Before(time.Now()) {
		t.Fatal("expected expiry in the future")
	}

	claims, err := mgr.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Username != "astra" {
		t.Fatalf("username mismatch: got %q", claims.Username)
	}
}

func TestSessionManager_RejectsForeignSecret(t *testing.T) {
	mgr := NewSessionManager([]byte("secret-a"), time.Hour)
	token, _, err := mgr.Issue("astra")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewSessionManager([]byte("secret-b"), time.Hour)
	if _, err := other.Validate(token); err == nil {
		t.Fatal("expected validation to fail under a different secret")
	}
}

func TestSessionManager_RejectsExpiredToken(t *testing.T) {
	mgr := NewSessionManager([]byte("test-secret"), -time.Hour)
	token, _, err := mgr.Issue("astra")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := mgr.Validate(token); err == nil {
		t.Fatal("expected validation to fail for already-expired token")
	}
}

func TestSessionManager_RejectsMalformedToken(t *testing.T) {
	mgr := NewSessionManager([]byte("test-secret"), time.Hour)
	if _, err := mgr.Validate("not-a-jwt"); err == nil {
		t.Fatal("expected validation to fail for malformed token")
	}
}
