package session

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/99designs/keyring"
	"github.com/golang-jwt/jwt/v5"
)

const (
	serviceName = "hiewhub"
	tokenKey    = "jwt"
)

// Store holds the bearer token for the current browser-profile-equivalent:
// the local user's keyring. It survives restarts and is cleared on logout
// or on any authentication failure.
type Store struct {
	ring keyring.Keyring
}

// Open returns a Store backed by the system keyring, falling back to an
// encrypted file when no native backend is available.
func Open() (*Store, error) {
	return OpenWithConfig(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/hiewhub/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("hiewhub-file-key"),
		KeychainTrustApplication: true,
	})
}

// OpenWithConfig opens a Store with an explicit keyring configuration.
// Tests use this with a file backend rooted in a temp directory.
func OpenWithConfig(cfg keyring.Config) (*Store, error) {
	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &Store{ring: ring}, nil
}

// IsActive reports whether a token is present.
func (s *Store) IsActive() bool {
	_, ok := s.Token()
	return ok
}

// Token returns the stored bearer token. The second return is false
// when no session exists. Implements the api.TokenSource contract.
func (s *Store) Token() (string, bool) {
	item, err := s.ring.Get(tokenKey)
	if err != nil || len(item.Data) == 0 {
		return "", false
	}
	return string(item.Data), true
}

// Save persists the token, replacing any previous session.
func (s *Store) Save(token string) error {
	err := s.ring.Set(keyring.Item{
		Key:  tokenKey,
		Data: []byte(token),
	})
	if err != nil {
		return fmt.Errorf("saving session token: %w", err)
	}
	return nil
}

// Clear removes the token. Clearing an absent token is not an error.
// The file backend reports a missing key as fs.ErrNotExist rather than
// keyring.ErrKeyNotFound, so both are tolerated.
func (s *Store) Clear() error {
	err := s.ring.Remove(tokenKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing session token: %w", err)
	}
	return nil
}

// Claims is the locally decoded token payload. It is used only for
// optimistic UI (greeting, role-gated menus before the profile loads);
// the server remains the source of truth for every authorization check.
type Claims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Decode parses the stored token's payload without verifying its
// signature. Returns nil with no error when no session exists or the
// token is malformed, matching the best-effort contract.
func (s *Store) Decode() *Claims {
	token, ok := s.Token()
	if !ok {
		return nil
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	claims := &Claims{
		UserID: stringClaim(mc, "id", "sub", "userId"),
		Email:  stringClaim(mc, "email"),
		Role:   stringClaim(mc, "role"),
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims
}

// stringClaim returns the first present string value among keys.
func stringClaim(mc jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if v, ok := mc[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
