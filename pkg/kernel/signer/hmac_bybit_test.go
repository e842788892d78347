package signer

import (
	"net/url"
	"testing"

	"github.com/exactkit/exact/pkg/secret"
)

func TestHMACBybitSignDeterministic(t *testing.T) {
	s := NewHMACBybit("testkey", secret.New("testsecret"), 5000)
	query := url.Values{"symbol": {"BTCUSDT"}}

	headers, _, err := s.Sign("GET", "/v5/market/instruments-info", query, nil, 1700000000000)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	const want = "86430b855bd6cfb7bf456f7ce63bccdebf36fa045b626549961f7b61e0762f68"
	if got := headers["X-BAPI-SIGN"]; got != want {
		t.Errorf("X-BAPI-SIGN = %s, want %s", got, want)
	}
	if headers["X-BAPI-API-KEY"] != "testkey" {
		t.Errorf("X-BAPI-API-KEY = %s, want testkey", headers["X-BAPI-API-KEY"])
	}
	if headers["X-BAPI-TIMESTAMP"] != "1700000000000" {
		t.Errorf("X-BAPI-TIMESTAMP = %s, want 1700000000000", headers["X-BAPI-TIMESTAMP"])
	}
	if headers["X-BAPI-RECV-WINDOW"] != "5000" {
		t.Errorf("X-BAPI-RECV-WINDOW = %s, want 5000", headers["X-BAPI-RECV-WINDOW"])
	}
}

func TestHMACBybitSignStableAcrossCalls(t *testing.T) {
	s := NewHMACBybit("k", secret.New("s"), 0)
	query := url.Values{"a": {"1"}}

	h1, _, _ := s.Sign("GET", "/x", query, nil, 1)
	h2, _, _ := s.Sign("GET", "/x", query, nil, 1)

	if h1["X-BAPI-SIGN"] != h2["X-BAPI-SIGN"] {
		t.Errorf("signature not deterministic for identical input")
	}
}

func TestHMACBybitDefaultRecvWindow(t *testing.T) {
	s := NewHMACBybit("k", secret.New("s"), 0)
	if s.recvWindow != 5000 {
		t.Errorf("recvWindow = %d, want default 5000", s.recvWindow)
	}
}

func TestHMACBybitValidateCredentials(t *testing.T) {
	if err := (&HMACBybit{}).ValidateCredentials(); err == nil {
		t.Error("expected error for missing api key and secret")
	}
	s := NewHMACBybit("k", secret.New("s"), 0)
	if err := s.ValidateCredentials(); err != nil {
		t.Errorf("unexpected error for complete credentials: %v", err)
	}
}
