package service

import (
	"testing"
	"time"

	"github.com/innoviii/entrance-backend/internal/config"
)

func newAuthService() *AuthService {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // MinCost+ keeps the test fast
	}
	return NewAuthService(cfg, nil)
}

func TestPasswordHashing(t *testing.T) {
	svc := newAuthService()

	hash, err := svc.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in plaintext")
	}

	if err := svc.CheckPassword(hash, "s3cret"); err != nil {
		t.Errorf("CheckPassword(correct) error = %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err != ErrInvalidCredentials {
		t.Errorf("CheckPassword(wrong) error = %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newAuthService()

	token, err := svc.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.AdminID != 42 {
		t.Errorf("AdminID = %d, want 42", claims.AdminID)
	}
	if claims.ID == "" {
		t.Error("claims missing jti")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := newAuthService().GenerateToken(7)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	other := NewAuthService(&config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour}, nil)
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted a token signed with a different secret")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := newAuthService().ValidateToken("not-a-jwt"); err == nil {
		t.Error("ValidateToken() accepted garbage input")
	}
}
