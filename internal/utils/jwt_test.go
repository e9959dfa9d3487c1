package utils

import (
	"strings"
	"testing"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/config"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		JWTExpirationMinutes: 15,
	}
}

func testUser() *models.User {
	u := &models.User{
		Email:    "doc@example.com",
		FullName: "Dr. Test",
		Role:     models.RoleDoctor,
	}
	u.ID = "user-123"
	return u
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateAccessToken(testUser(), cfg)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateToken(token, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
	}
	if claims.Role != models.RoleDoctor {
		t.Errorf("Role = %q, want %q", claims.Role, models.RoleDoctor)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateAccessToken(testUser(), cfg)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.JWTExpirationMinutes = -5

	token, err := GenerateAccessToken(testUser(), cfg)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	_, err = ValidateToken(token, cfg.JWTSecret)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Errorf("error = %v, want token expiry", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-jwt", "test-secret"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
