package helpers

import "testing"

func TestGenerateAndValidateToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, "user-123", "technician")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.UserID() != "user-123" {
		t.Errorf("UserID = %q, want user-123", claims.UserID())
	}
	if !claims.IsTechnician() {
		t.Errorf("expected technician role, got %q", claims.Role)
	}
	if claims.IsAdmin() {
		t.Error("technician claims should not be admin")
	}
	if !claims.IsOwner("user-123") {
		t.Error("IsOwner should match the subject")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("right-secret"), "user-123", "customer")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken([]byte("wrong-secret"), token); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken([]byte("secret"), "not.a.token"); err == nil {
		t.Error("expected validation to fail for a malformed token")
	}
}
