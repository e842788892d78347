package signer

import (
	"crypto/ed25519"
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/exactkit/exact/pkg/secret"
)

func testSeed() string {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	return base64.StdEncoding.EncodeToString(seed)
}

func TestNewEd25519RejectsBadBase64(t *testing.T) {
	if _, err := NewEd25519("key", secret.New("not-valid-base64!!!"), 5000); err == nil {
		t.Error("expected error for invalid base64 secret")
	}
}

func TestNewEd25519RejectsWrongSeedLength(t *testing.T) {
	short := base64.StdEncoding.EncodeToString([]byte("tooshort"))
	if _, err := NewEd25519("key", secret.New(short), 5000); err == nil {
		t.Error("expected error for undersized seed")
	}
}

func TestEd25519SignVerifiesAgainstPublicKey(t *testing.T) {
	s, err := NewEd25519("key", secret.New(testSeed()), 5000)
	if err != nil {
		t.Fatalf("NewEd25519 failed: %v", err)
	}

	query := url.Values{"symbol": {"SOL_USDC"}}
	headers, _, err := s.Sign("POST", "orderExecute", query, nil, 1700000000000)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	sigBytes, err := base64.StdEncoding.DecodeString(headers["X-Signature"])
	if err != nil {
		t.Fatalf("X-Signature is not valid base64: %v", err)
	}

	payload := "instruction=orderExecute&symbol=SOL_USDC&timestamp=1700000000000&window=5000"
	pub := s.privateKey.Public().(ed25519.PublicKey)
	if !ed25519.Verify(pub, []byte(payload), sigBytes) {
		t.Error("signature does not verify against the expected payload")
	}
}

func TestEd25519SignDeterministic(t *testing.T) {
	s, _ := NewEd25519("key", secret.New(testSeed()), 5000)
	h1, _, _ := s.Sign("POST", "orderExecute", nil, nil, 1)
	h2, _, _ := s.Sign("POST", "orderExecute", nil, nil, 1)

	if h1["X-Signature"] != h2["X-Signature"] {
		t.Error("EdDSA signatures should be deterministic for identical input")
	}
}

func TestEd25519ValidateCredentials(t *testing.T) {
	if err := (&Ed25519{}).ValidateCredentials(); err == nil {
		t.Error("expected error for missing credentials")
	}
}
