package workfront

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docsync/backend/internal/config"
	"github.com/docsync/backend/internal/infrastructure/logger"
	"github.com/golang-jwt/jwt/v5"
)

func testKeyPEM(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return key, string(pem.EncodeToMemory(block))
}

func TestObtainSession_ExchangesSignedAssertion(t *testing.T) {
	key, keyPEM := testKeyPEM(t)

	var gotAssertion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type: %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		if r.PostForm.Get("client_id") != "client-1" {
			t.Errorf("unexpected client_id: %s", r.PostForm.Get("client_id"))
		}
		if r.PostForm.Get("client_secret") != "secret-1" {
			t.Errorf("unexpected client_secret: %s", r.PostForm.Get("client_secret"))
		}
		gotAssertion = r.PostForm.Get("jwt_token")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"sess-123"}`))
	}))
	defer srv.Close()

	cfg := config.OAuthConfig{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		CustomerID:   "cust-1",
		UserID:       "user-1",
		PrivateKey:   keyPEM,
		TokenURL:     srv.URL,
	}

	provider := NewCredentialProvider(cfg, srv.Client(), logger.NewNop())
	cred, err := provider.ObtainSession(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Token != "sess-123" {
		t.Fatalf("unexpected token: %s", cred.Token)
	}

	until := time.Until(cred.ExpiresAt)
	if until <= 0 || until > sessionTTL {
		t.Fatalf("expiry not within session TTL: %s", until)
	}

	parsed, err := jwt.Parse(gotAssertion, func(tok *jwt.Token) (any, error) {
		if tok.Method.Alg() != jwt.SigningMethodRS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return &key.PublicKey, nil
	})
	if err != nil {
		t.Fatalf("assertion did not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["iss"] != "cust-1" {
		t.Fatalf("unexpected issuer: %v", claims["iss"])
	}
	if claims["sub"] != "user-1" {
		t.Fatalf("unexpected subject: %v", claims["sub"])
	}
}

func TestObtainSession_RejectedExchange(t *testing.T) {
	_, keyPEM := testKeyPEM(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	cfg := config.OAuthConfig{
		ClientID:     "client-1",
		ClientSecret: "wrong",
		CustomerID:   "cust-1",
		UserID:       "user-1",
		PrivateKey:   keyPEM,
		TokenURL:     srv.URL,
	}

	provider := NewCredentialProvider(cfg, srv.Client(), logger.NewNop())
	_, err := provider.ObtainSession(context.Background())

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
}

func TestObtainSession_BadPrivateKey(t *testing.T) {
	cfg := config.OAuthConfig{
		CustomerID: "cust-1",
		UserID:     "user-1",
		PrivateKey: "not a pem key",
		TokenURL:   "http://127.0.0.1:0",
	}

	provider := NewCredentialProvider(cfg, nil, logger.NewNop())
	_, err := provider.ObtainSession(context.Background())

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
}

func TestObtainSession_MissingAccessToken(t *testing.T) {
	_, keyPEM := testKeyPEM(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cfg := config.OAuthConfig{
		CustomerID: "cust-1",
		UserID:     "user-1",
		PrivateKey: keyPEM,
		TokenURL:   srv.URL,
	}

	provider := NewCredentialProvider(cfg, srv.Client(), logger.NewNop())
	_, err := provider.ObtainSession(context.Background())

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
}
