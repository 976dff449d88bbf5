package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate("secret", "user-1", "device-1", time.Hour)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	claims, err := Parse("secret", tok)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != "user-1" || claims.DeviceID != "device-1" {
		t.Errorf("wanted user-1/device-1, got %s/%s", claims.UserID, claims.DeviceID)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := Generate("secret", "user-1", "device-1", time.Hour)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if _, err := Parse("other-secret", tok); err == nil {
		t.Errorf("wanted error for wrong secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	// Generate treats non-positive TTLs as the default, so sign an
	// already-expired token by hand.
	claims := &Claims{
		UserID:   "user-1",
		DeviceID: "device-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := Parse("secret", tok); err == nil {
		t.Errorf("wanted error for expired token")
	}
}

func TestGenerateDefaultTTL(t *testing.T) {
	// Zero TTL falls back to the 30 day default

	tok, err := Generate("secret", "user-1", "device-1", 0)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	claims, err := Parse("secret", tok)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 29*24*time.Hour || ttl > 31*24*time.Hour {
		t.Errorf("wanted roughly 30 day expiry, got %v", ttl)
	}
}
