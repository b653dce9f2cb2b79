package auth

import (
	"testing"
	"time"
)

func testTokens() TokenService {
	return TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "lothub-test",
		Duration: time.Hour,
	}
}

func TestSignAndParseRoundtrip(t *testing.T) {
	ts := testTokens()
	u := &User{ID: "u-1", Username: "buyer", Email: "buyer@example.com", IsAdmin: true, TokenVersion: 3}

	token, exp, err := ts.Sign(u)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatal("expiry should be in the future")
	}

	claims, err := ts.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u-1" || claims.Username != "buyer" {
		t.Fatalf("claims = %+v", claims)
	}
	if !claims.IsAdmin || claims.TokenVersion != 3 {
		t.Fatalf("admin/version claims lost: %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	ts := testTokens()
	token, _, err := ts.Sign(&User{ID: "u-1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	other := TokenService{Secret: []byte("different"), Issuer: ts.Issuer, Duration: ts.Duration}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	ts := testTokens()
	token, _, err := ts.Sign(&User{ID: "u-1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	other := TokenService{Secret: ts.Secret, Issuer: "someone-else", Duration: ts.Duration}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected parse failure with wrong issuer")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	ts := testTokens()
	ts.Duration = -time.Minute

	token, _, err := ts.Sign(&User{ID: "u-1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := ts.Parse(token); err == nil {
		t.Fatal("expected parse failure for expired token")
	}
}
