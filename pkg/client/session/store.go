// Package session keeps the dashboard login token between runs. The
// token is stored verbatim in a file; user details are decoded from
// the token claims on read without verifying the signature, since
// verification happens server side on every request anyway.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/niramoy/clinic-api/internal/model"
)

const tokenFileMode = 0o600

// UserInfo is what the dashboard shows about the signed-in user. Zero
// value means "not signed in" or an unreadable token.
type UserInfo struct {
	ID    string
	Email string
	Role  string
}

// Store is a file-backed token store.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore places the token under the user config directory.
func DefaultStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return NewStore(filepath.Join(dir, "clinic", "session")), nil
}

// StoreUserInfo persists the access token.
func (s *Store) StoreUserInfo(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), tokenFileMode); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Token returns the stored token, or empty when none is stored.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// GetUserInfo decodes the stored token's claims. A missing or
// undecodable token yields the zero UserInfo, never an error: the
// dashboard treats both the same way.
func (s *Store) GetUserInfo() UserInfo {
	token, err := s.Token()
	if err != nil || token == "" {
		return UserInfo{}
	}

	var claims model.TokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return UserInfo{}
	}

	info := UserInfo{
		Email: claims.Email,
		Role:  strings.ToLower(claims.Role),
	}
	if claims.UserID != uuid.Nil {
		info.ID = claims.UserID.String()
	}
	return info
}

// IsLoggedIn reports whether a token is stored. It deliberately checks
// presence only; expiry and signature are the server's call.
func (s *Store) IsLoggedIn() bool {
	token, err := s.Token()
	return err == nil && token != ""
}

// RemoveUserInfo discards the stored token. Removing an absent session
// is not an error.
func (s *Store) RemoveUserInfo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
