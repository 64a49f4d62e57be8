package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)

	token, err := codec.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	id, ok := codec.Verify(token)
	if !ok {
		t.Fatalf("expected token to verify")
	}
	if id != "user-1" {
		t.Fatalf("unexpected user id: %s", id)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	codec := NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	other := NewTokenCodec([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)

	token, err := codec.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, ok := other.Verify(token); ok {
		t.Fatalf("expected verification to fail with wrong secret")
	}
}

func TestTokenExpiry(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"), 7*24*time.Hour)

	token, err := codec.WithNow(func() time.Time { return issued }).Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, ok := codec.WithNow(func() time.Time { return issued.Add(6 * 24 * time.Hour) }).Verify(token); !ok {
		t.Fatalf("expected token to be valid before expiry")
	}
	if _, ok := codec.WithNow(func() time.Time { return issued.Add(8 * 24 * time.Hour) }).Verify(token); ok {
		t.Fatalf("expected token to be rejected after expiry")
	}
}

func TestVerifyGarbage(t *testing.T) {
	codec := NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	if _, ok := codec.Verify("not.a.token"); ok {
		t.Fatalf("expected garbage token to fail")
	}
	if _, ok := codec.Verify(""); ok {
		t.Fatalf("expected empty token to fail")
	}
}
