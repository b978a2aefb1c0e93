package auth

import (
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "clinic-chat"

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	AccountID string        `json:"account_id"`
	Category  chat.Category `json:"category"`
	jwt.RegisteredClaims
}

// Tokens signs and validates HS256 bearer tokens with a shared secret.
type Tokens struct {
	secret   []byte
	duration time.Duration
}

func NewTokens(secret string, duration time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), duration: duration}
}

// GenerateToken creates a signed JWT for an account.
func (t *Tokens) GenerateToken(account chat.Account) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		AccountID: account.ID,
		Category:  account.Category,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// ValidateToken parses and validates the signature and expiration of a JWT string,
// and returns the account it was issued for.
func (t *Tokens) ValidateToken(tokenString string) (chat.Account, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return chat.Account{}, fmt.Errorf("%w: %v", errors.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.AccountID == "" || claims.Category == chat.CategoryUnknown {
		return chat.Account{}, errors.ErrUnauthenticated
	}
	return chat.Account{ID: claims.AccountID, Category: claims.Category}, nil
}
