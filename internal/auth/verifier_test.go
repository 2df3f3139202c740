package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agoralabs/agora/backend/internal/apperr"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerify_ValidToken(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"email":   "alice@agora.dev",
		"name":    "Alice",
		"picture": "https://img.example/alice.png",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice@agora.dev", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "https://img.example/alice.png", claims.Picture)
}

func TestVerify_FailuresCollapseToUnauthenticated(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	expired := signToken(t, testSecret, jwt.MapClaims{
		"email": "alice@agora.dev",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "some-other-secret", jwt.MapClaims{
		"email": "alice@agora.dev",
	})
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "alice@agora.dev",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"expired":       expired,
		"wrong key":     wrongKey,
		"alg none":      noneAlg,
		"malformed":     "not.a.token",
		"empty":         "",
		"missing email": signToken(t, testSecret, jwt.MapClaims{"name": "Alice"}),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			claims, err := v.Verify(context.Background(), token)
			assert.Nil(t, claims)
			require.Error(t, err)
			assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
			assert.Equal(t, "Unauthorized Access!", apperr.PublicMessage(err))
		})
	}
}
