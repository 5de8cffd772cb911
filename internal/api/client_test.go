package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// staticTokens is a TokenSource with a fixed token, or none at all.
type staticTokens struct {
	token string
	ok    bool
}

func (s staticTokens) Token() (string, bool) { return s.token, s.ok }

func TestGetAttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens{token: "tok-123", ok: true}, nil)
	var out struct {
		Data []int `json:"data"`
	}
	if err := c.Get(context.Background(), "/api/cart", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestNoSessionShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens{}, nil)
	err := c.Get(context.Background(), "/api/cart", nil)

	if !IsAuthError(err) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if called {
		t.Error("request reached the server despite missing session")
	}
}

func TestUnauthorizedMapsToAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens{token: "stale", ok: true}, nil)
	err := c.Get(context.Background(), "/api/profile", nil)

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", authErr.StatusCode)
	}
	if authErr.Message != "token expired" {
		t.Errorf("Message = %q, want server message", authErr.Message)
	}
}

func TestServerErrorCarriesEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"quantity must be positive"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens{token: "tok", ok: true}, nil)
	err := c.Post(context.Background(), "/api/cart", map[string]int{"quantity": -1}, nil)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if !IsRequestError(err) {
		t.Error("IsRequestError = false for a failed request")
	}
	if reqErr.Message != "quantity must be positive" {
		t.Errorf("Message = %q, want envelope error field", reqErr.Message)
	}
	if UserMessage(err) != "quantity must be positive" {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}
}

func TestServerErrorWithoutEnvelopeGetsGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens{token: "tok", ok: true}, nil)
	err := c.Get(context.Background(), "/api/products", nil)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.Message != genericErrMessage {
		t.Errorf("Message = %q, want generic", reqErr.Message)
	}
}

func TestNetworkFailureMapsToRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c := NewClient(srv.URL, staticTokens{token: "tok", ok: true}, nil)
	err := c.Get(context.Background(), "/api/products", nil)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for network failure", reqErr.StatusCode)
	}
	if IsAuthError(err) {
		t.Error("network failure must not classify as auth error")
	}
	if !IsRequestError(err) {
		t.Error("network failure must classify as request error")
	}
}

func TestPostPublicSkipsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"token":"fresh"}`))
	}))
	defer srv.Close()

	// Even a present token must not leak into public endpoints.
	c := NewClient(srv.URL, staticTokens{token: "tok", ok: true}, nil)
	var out struct {
		Token string `json:"token"`
	}
	if err := c.PostPublic(context.Background(), "/auth/login", map[string]string{"email": "a@b.c"}, &out); err != nil {
		t.Fatalf("PostPublic: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty on public endpoint", gotAuth)
	}
	if out.Token != "fresh" {
		t.Errorf("Token = %q", out.Token)
	}
}

func TestContextCancellationIsNotWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, staticTokens{token: "tok", ok: true}, nil)
	err := c.Get(ctx, "/api/products", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
