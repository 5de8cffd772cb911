package session

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/99designs/keyring"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenWithConfig(keyring.Config{
		ServiceName:      "hiewhub-test",
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          t.TempDir(),
		FilePasswordFunc: keyring.FixedStringPrompt("test"),
	})
	if err != nil {
		t.Fatalf("OpenWithConfig: %v", err)
	}
	return s
}

// unsignedToken builds a JWT-shaped token with the given claims and an
// empty signature. Decode never verifies, so this is sufficient.
func unsignedToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	enc := func(v any) string {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return base64.RawURLEncoding.EncodeToString(b)
	}
	header := map[string]string{"alg": "none", "typ": "JWT"}
	return enc(header) + "." + enc(claims) + "."
}

func TestSaveAndToken(t *testing.T) {
	s := newTestStore(t)

	if s.IsActive() {
		t.Fatal("fresh store reports an active session")
	}
	if _, ok := s.Token(); ok {
		t.Fatal("Token returned ok with nothing stored")
	}

	if err := s.Save("tok-1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok := s.Token()
	if !ok || got != "tok-1" {
		t.Errorf("Token = %q, %v", got, ok)
	}
	if !s.IsActive() {
		t.Error("IsActive = false after Save")
	}
}

func TestSaveReplacesPrevious(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("old"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("new"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := s.Token()
	if got != "new" {
		t.Errorf("Token = %q, want %q", got, "new")
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("tok"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.IsActive() {
		t.Error("session still active after Clear")
	}
	// Clearing again must not fail.
	if err := s.Clear(); err != nil {
		t.Errorf("Clear on empty store: %v", err)
	}
}

func TestDecodeClaims(t *testing.T) {
	s := newTestStore(t)
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := unsignedToken(t, map[string]any{
		"id":    "user-42",
		"email": "somchai@example.com",
		"role":  "VENDOR",
		"exp":   exp.Unix(),
	})
	if err := s.Save(tok); err != nil {
		t.Fatalf("Save: %v", err)
	}

	claims := s.Decode()
	if claims == nil {
		t.Fatal("Decode returned nil for a valid token")
	}
	if claims.UserID != "user-42" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Email != "somchai@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "VENDOR" {
		t.Errorf("Role = %q", claims.Role)
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt, exp)
	}
}

func TestDecodeFallsBackToSub(t *testing.T) {
	s := newTestStore(t)
	tok := unsignedToken(t, map[string]any{"sub": "user-7"})
	if err := s.Save(tok); err != nil {
		t.Fatalf("Save: %v", err)
	}

	claims := s.Decode()
	if claims == nil || claims.UserID != "user-7" {
		t.Errorf("Decode = %+v, want UserID user-7", claims)
	}
}

func TestDecodeBestEffort(t *testing.T) {
	s := newTestStore(t)

	if claims := s.Decode(); claims != nil {
		t.Errorf("Decode with no session = %+v, want nil", claims)
	}

	if err := s.Save("not-a-jwt"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if claims := s.Decode(); claims != nil {
		t.Errorf("Decode of malformed token = %+v, want nil", claims)
	}
}
