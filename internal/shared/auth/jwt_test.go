package auth

import (
	"strings"
	"testing"
	"time"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	token, err := SignJWT(Claims{Sub: "user-1", Email: "u@example.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Sub != "user-1" || claims.Email != "u@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	token, err := SignJWT(Claims{Sub: "user-1"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parts := strings.Split(token, ".")
	parts[1] = parts[1] + "x"
	if _, err := VerifyJWT(strings.Join(parts, ".")); err == nil {
		t.Fatal("expected tampered token to fail")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, err := SignJWT(Claims{
		Sub: "user-1",
		Iat: time.Now().UTC().Add(-2 * time.Hour).Unix(),
		Exp: time.Now().UTC().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyJWT(token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}
