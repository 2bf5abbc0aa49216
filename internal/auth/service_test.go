package auth

import (
	"errors"
	"testing"
)

func TestIssueAndValidateToken(t *testing.T) {
	svc := NewService("secret", "key")

	resp, err := svc.IssueToken("device-1", "key")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.AccessToken == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	deviceID, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if deviceID != "device-1" {
		t.Fatalf("device id: %s", deviceID)
	}
}

func TestIssueTokenWrongKey(t *testing.T) {
	svc := NewService("secret", "key")

	if _, err := svc.IssueToken("device-1", "wrong"); !errors.Is(err, ErrAPIKey) {
		t.Fatalf("expected ErrAPIKey, got %v", err)
	}
}

func TestIssueTokenNoKeyConfigured(t *testing.T) {
	svc := NewService("secret", "")

	if _, err := svc.IssueToken("device-1", "anything"); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewService("secret", "key")

	if _, err := svc.ValidateToken("not-a-jwt"); err == nil {
		t.Fatalf("expected error")
	}
}
