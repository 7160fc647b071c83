package utils

import (
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("6565f0a1b2c3d4e5f6a7b8c9", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "6565f0a1b2c3d4e5f6a7b8c9" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateToken("6565f0a1b2c3d4e5f6a7b8c9", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "a-different-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestGenerateTokenMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := GenerateToken("6565f0a1b2c3d4e5f6a7b8c9", "alice@example.com"); err == nil {
		t.Error("token generated without a configured secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token was accepted")
	}
}
