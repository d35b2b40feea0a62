package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
)

type stubVerifier struct {
	token *auth.Token
	err   error
	got   string
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	s.got = idToken
	return s.token, s.err
}

func TestFirebaseAuthSetsIdentity(t *testing.T) {
	v := &stubVerifier{token: &auth.Token{UID: "uid-1", Claims: map[string]any{"email": "jane@example.com"}}}
	m := NewMiddleware(v)

	var uid, email string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid = UID(r.Context())
		email = Email(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/wallets", nil)
	req.Header.Set("Authorization", "Bearer abc.def")
	rr := httptest.NewRecorder()
	m.FirebaseAuth(next).ServeHTTP(rr, req)

	if v.got != "abc.def" {
		t.Fatalf("verifier got token %q", v.got)
	}
	if uid != "uid-1" || email != "jane@example.com" {
		t.Fatalf("context identity = %q %q", uid, email)
	}
}

func TestFirebaseAuthRejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
	}{
		{"missing header", "", nil},
		{"wrong scheme", "Basic abc", nil},
		{"extra parts", "Bearer a b", nil},
		{"invalid token", "Bearer abc", errors.New("expired")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMiddleware(&stubVerifier{token: &auth.Token{UID: "uid-1"}, err: tc.err})
			called := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

			req := httptest.NewRequest(http.MethodGet, "/wallets", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			m.FirebaseAuth(next).ServeHTTP(rr, req)

			if called {
				t.Fatalf("next handler ran")
			}
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rr.Code)
			}
		})
	}
}
