package signer

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/exactkit/exact/pkg/secret"
)

func TestJWTSignProducesBearerToken(t *testing.T) {
	s := NewJWT("subject-id", secret.New("signing-secret"), 60*time.Second)

	headers, _, err := s.Sign("GET", "/orders", nil, nil, time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	auth := headers["Authorization"]
	if !strings.HasPrefix(auth, "Bearer ") {
		t.Fatalf("Authorization header = %q, want Bearer prefix", auth)
	}

	raw := strings.TrimPrefix(auth, "Bearer ")
	parsed, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return []byte("signing-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("minted token did not parse/validate: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not a MapClaims")
	}
	if claims["sub"] != "subject-id" {
		t.Errorf("sub claim = %v, want subject-id", claims["sub"])
	}
}

func TestJWTSignRejectsWrongSecret(t *testing.T) {
	s := NewJWT("subject-id", secret.New("signing-secret"), time.Minute)
	headers, _, _ := s.Sign("GET", "/orders", nil, nil, 1700000000000)
	raw := strings.TrimPrefix(headers["Authorization"], "Bearer ")

	_, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil {
		t.Error("expected parse failure with the wrong signing secret")
	}
}

func TestJWTDefaultTTL(t *testing.T) {
	s := NewJWT("k", secret.New("s"), 0)
	if s.ttl != 60*time.Second {
		t.Errorf("ttl = %v, want default 60s", s.ttl)
	}
}

func TestJWTValidateCredentials(t *testing.T) {
	if err := (&JWT{}).ValidateCredentials(); err == nil {
		t.Error("expected error for missing credentials")
	}
	s := NewJWT("k", secret.New("s"), 0)
	if err := s.ValidateCredentials(); err != nil {
		t.Errorf("unexpected error for complete credentials: %v", err)
	}
}
