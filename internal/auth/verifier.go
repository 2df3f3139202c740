// Package auth is the identity gate: it turns an opaque bearer credential
// into a verified principal. The Verifier is injected wherever it is needed
// so tests can substitute a fake.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agoralabs/agora/backend/internal/apperr"
)

// Claims is the verified principal extracted from a credential.
type Claims struct {
	Email   string
	Name    string
	Picture string
}

type Verifier interface {
	// Verify checks the credential and returns the principal. Every
	// verification failure (expired, malformed, wrong signer) collapses to
	// an Unauthenticated error; callers cannot distinguish sub-reasons.
	Verify(ctx context.Context, token string) (*Claims, error)
}

// JWTVerifier validates HS256 tokens issued by the identity provider.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Wrap(apperr.Unauthenticated, "Unauthorized Access!", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.New(apperr.Unauthenticated, "Unauthorized Access!")
	}

	email, _ := mapClaims["email"].(string)
	if email == "" {
		return nil, apperr.New(apperr.Unauthenticated, "Unauthorized Access!")
	}

	claims := &Claims{Email: email}
	claims.Name, _ = mapClaims["name"].(string)
	claims.Picture, _ = mapClaims["picture"].(string)
	return claims, nil
}
