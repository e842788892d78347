package signer

import (
	"net/url"
	"testing"

	"github.com/exactkit/exact/pkg/secret"
)

func TestHMACOKXSignDeterministic(t *testing.T) {
	s := NewHMACOKX("testkey", secret.New("testsecret"), secret.New("testpass"))
	query := url.Values{"ccy": {"USDT"}}

	headers, _, err := s.Sign("GET", "/api/v5/account/balance", query, nil, 1700000000000)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	const want = "CXnwNDedUF7tVHSNbW4tbN62+KCzB23BKJobjL7Zi98="
	if got := headers["OK-ACCESS-SIGN"]; got != want {
		t.Errorf("OK-ACCESS-SIGN = %s, want %s", got, want)
	}
	if headers["OK-ACCESS-KEY"] != "testkey" {
		t.Errorf("OK-ACCESS-KEY = %s, want testkey", headers["OK-ACCESS-KEY"])
	}
	if headers["OK-ACCESS-PASSPHRASE"] != "testpass" {
		t.Errorf("OK-ACCESS-PASSPHRASE = %s, want testpass", headers["OK-ACCESS-PASSPHRASE"])
	}
	if headers["OK-ACCESS-TIMESTAMP"] != "2023-11-14T22:13:20.000Z" {
		t.Errorf("OK-ACCESS-TIMESTAMP = %s, want 2023-11-14T22:13:20.000Z", headers["OK-ACCESS-TIMESTAMP"])
	}
}

func TestHMACOKXSignPostBodyDiffersFromGetQuery(t *testing.T) {
	s := NewHMACOKX("k", secret.New("s"), secret.New("p"))
	query := url.Values{"ignored": {"1"}}

	headersPost, _, _ := s.Sign("POST", "/api/v5/trade/order", nil, []byte(`{"instId":"BTC-USDT"}`), 1700000000000)
	headersGet, _, _ := s.Sign("GET", "/api/v5/trade/order", query, nil, 1700000000000)

	if headersPost["OK-ACCESS-SIGN"] == headersGet["OK-ACCESS-SIGN"] {
		t.Error("expected different signatures for POST-with-body vs GET-with-query")
	}
}

func TestHMACOKXValidateCredentialsRequiresPassphrase(t *testing.T) {
	s := NewHMACOKX("k", secret.New("s"), secret.New(""))
	if err := s.ValidateCredentials(); err == nil {
		t.Error("expected error when passphrase is empty")
	}

	complete := NewHMACOKX("k", secret.New("s"), secret.New("p"))
	if err := complete.ValidateCredentials(); err != nil {
		t.Errorf("unexpected error for complete credentials: %v", err)
	}
}
