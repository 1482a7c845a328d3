// Package session keeps the authentication token of the investmap client
// between two invocations.
//
// The token is a JWT signed by the service. It is stored as is in a small
// JSON file readable by its owner only; the client never verifies the
// signature, it only reads the expiry to avoid sending a token the service
// would reject anyway.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned by Load when nobody is logged in.
var ErrNoSession = errors.New("no session, please login")

// Session is what a successful login leaves behind.
type Session struct {
	Token   string    `json:"token"`
	Email   string    `json:"email,omitempty"`
	SavedAt time.Time `json:"savedAt"`
}

// Claims are the claims the service puts in its tokens.
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the claims of token without checking its signature.
func ParseClaims(token string) (*Claims, error) {
	claims := new(Claims)
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}
	return claims, nil
}

// ExpiresAt returns the expiry of the token, and false when it has none or
// cannot be decoded.
func (s *Session) ExpiresAt() (time.Time, bool) {
	claims, err := ParseClaims(s.Token)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether the token is past its expiry at now. A token
// without a readable expiry is never considered expired: the service decides.
func (s *Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && !now.Before(exp)
}

// UserID returns the user id claimed by the token, or 0.
func (s *Session) UserID() int {
	claims, err := ParseClaims(s.Token)
	if err != nil {
		return 0
	}
	return claims.UserID
}

// Store persists a Session in a file.
type Store struct {
	path string
}

// NewStore returns a store saving to path.
func NewStore(path string) *Store { return &Store{path: path} }

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "investmap", "session.json")
}

// Path returns the file the store saves to.
func (s *Store) Path() string { return s.path }

// Load reads the saved session. It returns ErrNoSession when there is none.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("reading session %q: %w", s.path, err)
	}
	sess := new(Session)
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, fmt.Errorf("decoding session %q: %w", s.path, err)
	}
	if sess.Token == "" {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Save writes sess, replacing any previous session.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session %q: %w", s.path, err)
	}
	return nil
}

// Clear forgets the session. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session %q: %w", s.path, err)
	}
	return nil
}
