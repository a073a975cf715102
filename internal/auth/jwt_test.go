package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-with-at-least-32-characters"

func TestAccessTokenRoundtrip(t *testing.T) {
	mgr := NewJWTManager(testSecret, time.Minute)

	token, jti, err := mgr.GenerateAccessToken("user-123", "manager")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a token id")
	}

	claims, err := mgr.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("subject = %q, want user-123", claims.Subject)
	}
	if claims.Role != "manager" {
		t.Errorf("role = %q, want manager", claims.Role)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	mgr := NewJWTManager(testSecret, -time.Minute)

	token, _, err := mgr.GenerateAccessToken("user-123", "employee")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := mgr.ParseAndValidate(token); err == nil {
		t.Fatal("expired token should be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	mgr := NewJWTManager(testSecret, time.Minute)

	token, _, err := mgr.GenerateAccessToken("user-123", "employee")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := mgr.ParseAndValidate(tampered); err == nil {
		t.Fatal("tampered token should be rejected")
	}

	other := NewJWTManager(strings.Repeat("x", 32), time.Minute)
	if _, err := other.ParseAndValidate(token); err == nil {
		t.Fatal("token signed with another secret should be rejected")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	raw, hash, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if raw == "" || hash == "" {
		t.Fatal("expected non-empty token and hash")
	}
	if HashRefreshToken(raw) != hash {
		t.Fatal("hash should be reproducible from the raw token")
	}
	if !strings.HasPrefix(RefreshRedisKey(hash), "refresh:app:") {
		t.Fatalf("unexpected redis key: %s", RefreshRedisKey(hash))
	}

	raw2, hash2, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if raw2 == raw || hash2 == hash {
		t.Fatal("tokens should be unique")
	}
}

func TestPasswordHashVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := Verify("correct horse battery staple", hash)
	if err != nil || !ok {
		t.Fatalf("verify = %v, %v; want true, nil", ok, err)
	}

	ok, err = Verify("wrong password", hash)
	if err != nil {
		t.Fatalf("verify wrong: %v", err)
	}
	if ok {
		t.Fatal("wrong password should not verify")
	}
}
