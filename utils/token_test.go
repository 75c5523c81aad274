package utils

import (
	"errors"
	"testing"
	"time"
)

func testTokenService() *TokenService {
	return NewTokenService(TokenConfig{
		Secret:     "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := testTokenService()

	token, err := svc.IssueAccessToken(42, "farmer")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := svc.Decode(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "farmer" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != "access" {
		t.Fatalf("expected access type marker, got %q", claims.TokenType)
	}
}

func TestRefreshTokenCarriesTypeMarker(t *testing.T) {
	svc := testTokenService()

	token, expiresAt, err := svc.IssueRefreshToken(7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if time.Until(expiresAt) < 6*24*time.Hour {
		t.Fatalf("refresh expiry too short: %v", expiresAt)
	}

	claims, err := svc.Decode(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Fatalf("expected refresh type marker, got %q", claims.TokenType)
	}
	if claims.Role != "" {
		t.Fatalf("refresh token must not carry a role, got %q", claims.Role)
	}
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	token, err := testTokenService().IssueAccessToken(1, "farmer")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	other := NewTokenService(TokenConfig{Secret: "different-secret", AccessTTL: time.Hour})
	if _, err := other.Decode(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "test-secret", AccessTTL: -time.Minute})

	token, err := svc.IssueAccessToken(1, "farmer")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := svc.Decode(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := testTokenService().Decode("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
