package auth

import (
	"path/filepath"
	"testing"
)

func TestStore_RegisterAndAuthenticate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := store.Register("Astra", "hunter2pass"); err != nil {
		t.Fatalf("register: %v", err)
	}

	acct, err := store.Authenticate("astra", "hunter2pass")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if acct.Username != "Astra" {
		t.Fatalf("expected original-case username preserved, got %q", acct.Username)
	}
}

func TestStore_RegisterRejectsDuplicateUsername(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.Register("astra", "pw1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := store.Register("Astra", "pw2"); err == nil {
		t.Fatal("expected duplicate username (case-insensitive) to be rejected")
	}
}

func TestStore_RegisterRejectsReservedNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, name := range []string{"guest", "Guest_42", "admin"} {
		if _, err := store.Register(name, "pw"); err == nil {
			t.Fatalf("expected %q to be rejected as reserved", name)
		}
	}
}

func TestStore_AuthenticateRejectsWrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.Register("astra", "correctpw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := store.Authenticate("astra", "wrongpw"); err == nil {
		t.Fatal("expected authentication failure for wrong password")
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.Register("astra", "pw123456"); err != nil {
		t.Fatalf("register: %v", err)
	}

	reopened, err := OpenStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, err := reopened.Authenticate("astra", "pw123456"); err != nil {
		t.Fatalf("authenticate after reopen: %v", err)
	}
}

func TestOpenStore_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.Authenticate("nobody", "pw"); err == nil {
		t.Fatal("expected authenticate against empty store to fail")
	}
}
