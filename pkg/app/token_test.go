package app

import (
	"testing"
	"time"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey:     "user-secret",
		AccessExpiry:  24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "user-issuer",
	}
	tm := NewTokenManager(cfg)

	uid := int64(1001)
	email := "a@example.com"
	ip := "127.0.0.1"

	// 1. 测试生成和解析
	token, err := tm.Generate(uid, email, ip)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsedUser, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if parsedUser.UID != uid {
		t.Errorf("Expected UID %d, got %d", uid, parsedUser.UID)
	}
	if parsedUser.Email != email {
		t.Errorf("Expected Email %s, got %s", email, parsedUser.Email)
	}
	if parsedUser.Issuer != cfg.Issuer {
		t.Errorf("Expected Issuer %s, got %s", cfg.Issuer, parsedUser.Issuer)
	}

	// 验证 ExpiresAt，允许 1 秒内的误差
	expectedExp := time.Now().Add(cfg.AccessExpiry)
	if d := parsedUser.ExpiresAt.Sub(expectedExp); d > time.Second || d < -time.Second {
		t.Errorf("Expected ExpiresAt around %v, got %v", expectedExp, parsedUser.ExpiresAt)
	}

	// 2. 测试过期
	shortExpiryCfg := cfg
	shortExpiryCfg.AccessExpiry = -1 * time.Second
	tmExpired := NewTokenManager(shortExpiryCfg)

	expiredToken, err := tmExpired.Generate(uid, email, ip)
	if err != nil {
		t.Fatalf("Generate (expired) failed: %v", err)
	}
	if _, err = tm.Parse(expiredToken); err == nil {
		t.Error("Expected error for expired token, but got nil")
	}

	// 3. 测试错误的密钥
	wrongKeyCfg := cfg
	wrongKeyCfg.SecretKey = "wrong-user-secret"
	tmWrongKey := NewTokenManager(wrongKeyCfg)

	wrongToken, _ := tmWrongKey.Generate(uid, email, ip)
	if _, err = tm.Parse(wrongToken); err == nil {
		t.Error("Expected error for token generated with different secret key, but got nil")
	}

	// 4. 测试篡改后的 Token
	if _, err = tm.Parse(token + "xyz"); err == nil {
		t.Error("Expected error for tampered user token, but got nil")
	}

	// 5. 测试错误的签发者
	otherIssuerCfg := cfg
	otherIssuerCfg.Issuer = "someone-else"
	otherToken, _ := NewTokenManager(otherIssuerCfg).Generate(uid, email, ip)
	if _, err = tm.Parse(otherToken); err == nil {
		t.Error("Expected error for token with different issuer, but got nil")
	}
}

func TestTokenManager_SubjectsAreNotInterchangeable(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "user-secret"})

	access, err := tm.Generate(1, "a@example.com", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	refresh, err := tm.GenerateRefresh(1, "a@example.com", "")
	if err != nil {
		t.Fatalf("GenerateRefresh failed: %v", err)
	}

	if _, err := tm.ParseRefresh(refresh); err != nil {
		t.Errorf("ParseRefresh failed: %v", err)
	}
	if _, err := tm.Parse(refresh); err == nil {
		t.Error("Expected refresh token to be rejected as access token")
	}
	if _, err := tm.ParseRefresh(access); err == nil {
		t.Error("Expected access token to be rejected as refresh token")
	}
}

func TestTokenManager_Defaults(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "k"})
	if tm.AccessExpiry() != 24*time.Hour {
		t.Errorf("Expected default access expiry 24h, got %v", tm.AccessExpiry())
	}

	refresh, _ := tm.GenerateRefresh(9, "b@example.com", "")
	claims, err := tm.ParseRefresh(refresh)
	if err != nil {
		t.Fatalf("ParseRefresh failed: %v", err)
	}
	want := time.Now().Add(7 * 24 * time.Hour)
	if d := claims.ExpiresAt.Sub(want); d > time.Second || d < -time.Second {
		t.Errorf("Expected refresh expiry around %v, got %v", want, claims.ExpiresAt)
	}
}
