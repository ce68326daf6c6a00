package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func testConfig() Config {
	return Config{Issuer: "insurance-service", Audience: "insurance-users", TTL: time.Hour, KID: "k1"}
}

func TestGenerateAndVerify(t *testing.T) {
	key := newTestKey(t)
	m := NewManager(key, &key.PublicKey, testConfig())

	tok, err := m.Generator.GenerateAccessToken(42, "agent@example.com", "agent")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	claims, err := m.Verifier.VerifyAccessToken(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "agent@example.com", claims.Email)
	assert.True(t, claims.IsAgent())
	assert.Equal(t, tok.JTI, claims.ID)
}

func TestVerify_Rejects(t *testing.T) {
	key := newTestKey(t)
	other := newTestKey(t)

	t.Run("wrong signing key", func(t *testing.T) {
		gen := NewGenerator(other, "insurance-service", "insurance-users", "", time.Hour)
		tok, err := gen.GenerateAccessToken(1, "a@b.c", "customer")
		require.NoError(t, err)

		_, err = NewVerifier(&key.PublicKey, "insurance-service", "insurance-users").Verify(tok.Value)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		gen := NewGenerator(key, "someone-else", "insurance-users", "", time.Hour)
		tok, err := gen.GenerateAccessToken(1, "a@b.c", "customer")
		require.NoError(t, err)

		_, err = NewVerifier(&key.PublicKey, "insurance-service", "insurance-users").Verify(tok.Value)
		assert.ErrorContains(t, err, "invalid issuer")
	})

	t.Run("wrong audience", func(t *testing.T) {
		gen := NewGenerator(key, "insurance-service", "other-app", "", time.Hour)
		tok, err := gen.GenerateAccessToken(1, "a@b.c", "customer")
		require.NoError(t, err)

		_, err = NewVerifier(&key.PublicKey, "insurance-service", "insurance-users").Verify(tok.Value)
		assert.ErrorContains(t, err, "invalid audience")
	})

	t.Run("expired", func(t *testing.T) {
		gen := NewGenerator(key, "insurance-service", "insurance-users", "", -time.Minute)
		tok, err := gen.GenerateAccessToken(1, "a@b.c", "customer")
		require.NoError(t, err)

		_, err = NewVerifier(&key.PublicKey, "insurance-service", "insurance-users").Verify(tok.Value)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewVerifier(&key.PublicKey, "insurance-service", "insurance-users").Verify("not.a.token")
		assert.Error(t, err)
	})
}

func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, mutate func(c *Claims)) string {
	t.Helper()
	now := time.Now()
	c := &Claims{
		UserID:  9,
		Email:   "c@example.com",
		Role:    "customer",
		Purpose: purposeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "insurance-service",
			Subject:   "9",
			Audience:  []string{"insurance-users"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	mutate(c)
	signed, err := jwt.NewWithClaims(method, c).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestVerifyAccessToken_Identity(t *testing.T) {
	key := newTestKey(t)
	v := NewVerifier(&key.PublicKey, "insurance-service", "insurance-users")

	t.Run("well formed", func(t *testing.T) {
		claims, err := v.VerifyAccessToken(signClaims(t, jwt.SigningMethodRS256, key, func(*Claims) {}))
		require.NoError(t, err)
		assert.False(t, claims.IsAgent())
	})

	cases := map[string]struct {
		mutate func(c *Claims)
		want   error
	}{
		"unknown role":     {func(c *Claims) { c.Role = "admin" }, ErrUnknownRole},
		"empty role":       {func(c *Claims) { c.Role = "" }, ErrUnknownRole},
		"refresh purpose":  {func(c *Claims) { c.Purpose = "refresh" }, ErrNotAccessToken},
		"zero user id":     {func(c *Claims) { c.UserID = 0; c.Subject = "0" }, ErrBadSubject},
		"subject mismatch": {func(c *Claims) { c.Subject = "10" }, ErrBadSubject},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.VerifyAccessToken(signClaims(t, jwt.SigningMethodRS256, key, tc.mutate))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("missing expiry", func(t *testing.T) {
		_, err := v.VerifyAccessToken(signClaims(t, jwt.SigningMethodRS256, key, func(c *Claims) { c.ExpiresAt = nil }))
		assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)
	})

	t.Run("non RS256 algorithm", func(t *testing.T) {
		_, err := v.VerifyAccessToken(signClaims(t, jwt.SigningMethodRS512, key, func(*Claims) {}))
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})
}

func TestLoadAndBuild(t *testing.T) {
	key := newTestKey(t)
	dir := t.TempDir()

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	privPath := filepath.Join(dir, "priv.pem")
	pubPath := filepath.Join(dir, "pub.pem")
	require.NoError(t, os.WriteFile(privPath, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}), 0o600))
	require.NoError(t, os.WriteFile(pubPath, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}), 0o600))

	cfg := testConfig()
	cfg.PrivPath = privPath
	cfg.PubPath = pubPath

	m, err := LoadAndBuild(cfg)
	require.NoError(t, err)

	tok, err := m.Generator.GenerateAccessToken(7, "c@example.com", "customer")
	require.NoError(t, err)
	_, err = m.Verifier.VerifyAccessToken(tok.Value)
	assert.NoError(t, err)
}

func TestParseRSAPrivateKey_NoBlock(t *testing.T) {
	_, err := ParseRSAPrivateKey([]byte("not pem"))
	assert.ErrorContains(t, err, "no PEM block")
}
