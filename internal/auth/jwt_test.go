package auth

import (
	"testing"
	"time"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken(testMasterKey, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	claims, err := ValidateAdminToken(testMasterKey, token)
	if err != nil {
		t.Fatalf("ValidateAdminToken: %v", err)
	}
	if !claims.Admin {
		t.Error("expected admin claim")
	}
	if claims.ID == "" {
		t.Error("expected JTI to be set")
	}
}

func TestAdminTokenWrongSecret(t *testing.T) {
	token, err := GenerateAdminToken(testMasterKey, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	if _, err := ValidateAdminToken("other-secret", token); err == nil {
		t.Error("expected validation failure with wrong secret")
	}
}

func TestAdminTokenExpired(t *testing.T) {
	token, err := GenerateAdminToken(testMasterKey, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	if _, err := ValidateAdminToken(testMasterKey, token); err == nil {
		t.Error("expected validation failure for expired token")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	if _, err := ValidateAdminToken(testMasterKey, "not.a.token"); err == nil {
		t.Error("expected validation failure for garbage token")
	}
}
