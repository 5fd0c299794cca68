package security

import (
	"testing"
	"time"

	"studentgigs/internal/common"
)

func TestJWTProviderRoundTrip(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	userID := common.NewUUID()

	token, expiresAt, err := provider.Generate(userID, "student", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatal("expected a future expiry")
	}
	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID.String() || claims.Role != "student" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTProviderRejectsExpiredAndForeignTokens(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	userID := common.NewUUID()

	expired, _, err := provider.Generate(userID, "student", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := provider.Parse(expired); err == nil {
		t.Fatal("expected expired token to be rejected")
	}

	foreign, _, err := NewJWTProvider("other-secret").Generate(userID, "student", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := provider.Parse(foreign); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("S3cretPass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "S3cretPass") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
	if _, err := HashPassword("short"); err == nil {
		t.Fatal("expected short password to be rejected")
	}
}
