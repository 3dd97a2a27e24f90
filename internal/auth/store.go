package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// reservedUsernames blocks names that would collide with the server's own
// default spectator/guest identities.
var reservedUsernames = map[string]bool{
	"guest":  true,
	"server": true,
	"admin":  true,
}

func isReserved(username string) bool {
	lower := strings.ToLower(username)
	if reservedUsernames[lower] {
		return true
	}
	return strings.HasPrefix(lower, "guest_")
}

// Account is one persisted player identity.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// accountDocument is the single JSON document persisted to disk: a
// versioned map keyed by lowercased username.
type accountDocument struct {
	Version  int                `json:"version"`
	Accounts map[string]Account `json:"accounts"`
}

const documentVersion = 1

// Store is a JSON-file-backed account store. All accounts live in one
// document that is atomically rewritten on every mutation — acceptable
// for the account volumes this server expects, and simple to reason
// about for crash safety.
type Store struct {
	mu   sync.Mutex
	path string
	doc  accountDocument
}

// OpenStore loads path if it exists, or starts an empty store if not.
func OpenStore(path string) (*Store, error) {
	s := &Store{
		path: path,
		doc:  accountDocument{Version: documentVersion, Accounts: make(map[string]Account)},
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, newAuthError(ErrStoreUnavailable, err.Error())
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.doc); err != nil {
		return nil, newAuthError(ErrStoreUnavailable, err.Error())
	}
	if s.doc.Accounts == nil {
		s.doc.Accounts = make(map[string]Account)
	}
	return s, nil
}

// Register creates a new account with an Argon2id password hash. Fails if
// the username is reserved or already taken.
func (s *Store) Register(username, password string) (*Account, error) {
	if isReserved(username) {
		return nil, newAuthError(ErrReservedUsername, username)
	}
	key := strings.ToLower(username)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.doc.Accounts[key]; exists {
		return nil, newAuthError(ErrUsernameTaken, username)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	acct := Account{Username: username, PasswordHash: hash, CreatedAt: time.Now()}
	s.doc.Accounts[key] = acct
	if err := s.persist(); err != nil {
		delete(s.doc.Accounts, key)
		return nil, err
	}
	return &acct, nil
}

// Authenticate verifies a username/password pair against the stored hash.
func (s *Store) Authenticate(username, password string) (*Account, error) {
	key := strings.ToLower(username)

	s.mu.Lock()
	acct, exists := s.doc.Accounts[key]
	s.mu.Unlock()
	if !exists {
		return nil, newAuthError(ErrInvalidCredentials, "unknown username")
	}

	ok, err := VerifyPassword(acct.PasswordHash, password)
	if err != nil || !ok {
		return nil, newAuthError(ErrInvalidCredentials, "password mismatch")
	}
	return &acct, nil
}

// persist writes the document to a temp file and renames it into place,
// so a crash mid-write never leaves a truncated document on disk.
func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return newAuthError(ErrStoreUnavailable, err.Error())
	}
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return newAuthError(ErrStoreUnavailable, err.Error())
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return newAuthError(ErrStoreUnavailable, err.Error())
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return newAuthError(ErrStoreUnavailable, err.Error())
	}
	return nil
}
