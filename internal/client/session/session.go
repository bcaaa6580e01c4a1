package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type Identity struct {
	Username string `json:"username"`
}

type persisted struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}

// Store owns the process-wide session state: the token and identity
// are set together at login, cleared together at logout, and never
// mutated otherwise. The pair is persisted to a session file so a
// restarted client resumes authenticated.
type Store struct {
	mu       sync.Mutex
	filepath string
	token    string
	identity Identity
}

// NewStore restores any previously persisted session from path.
// A missing or unreadable session file means "not authenticated",
// never an error: the server is the authority on token validity.
func NewStore(path string) *Store {
	s := &Store{filepath: path}
	s.restore()
	return s
}

func (s *Store) restore() {
	b, err := os.ReadFile(s.filepath)
	if err != nil {
		return
	}

	var p persisted
	if err := json.Unmarshal(b, &p); err != nil || p.Token == "" {
		return
	}

	s.token = p.Token
	s.identity = p.Identity
}

// Login stores the token and identity atomically and persists them.
func (s *Store) Login(token string, identity Identity) error {
	const op = "Store.Login"

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.identity = identity

	if err := s.persist(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) persist() error {
	b, err := json.Marshal(persisted{Token: s.token, Identity: s.identity})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.filepath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.filepath, b, 0o600)
}

// Logout clears the session from memory and from the session file.
// Idempotent: logging out with no active session is a no-op.
func (s *Store) Logout() error {
	const op = "Store.Logout"

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.identity = Identity{}

	err := os.Remove(s.filepath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// CurrentToken returns the token for attachment to outgoing
// requests, or the empty string when no session is active.
func (s *Store) CurrentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) CurrentIdentity() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}
