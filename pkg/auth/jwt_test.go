package auth

import (
	"testing"
	"time"
)

const secret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken(42, "user@example.com", "A User", "instructor", secret, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := Parse(token, secret)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Sub != 42 || claims.Email != "user@example.com" || claims.Role != "instructor" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewAccessToken(1, "user@example.com", "", "student", secret, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(token, "other-secret"); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := NewAccessToken(1, "user@example.com", "", "student", secret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(token, secret); err == nil {
		t.Fatal("expired token must not parse")
	}
}

func TestRefreshTokenCarriesRefreshRole(t *testing.T) {
	token, err := NewRefreshToken(7, "user@example.com", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := Parse(token, secret)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Role != "refresh" {
		t.Fatalf("role = %q", claims.Role)
	}
}
