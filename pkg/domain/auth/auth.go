package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/statops/tabstat/pkg/domain"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken error = errors.New("invalid token")
var ErrBadCredential error = errors.New("bad credential")

// Claims carried by tokens this package issues.
type Claims struct {
	jwt.RegisteredClaims

	// private claims
	UserName string `json:"tabstat/userName"`
	Email    string `json:"tabstat/email"`
}

// Authority issues and verifies the bearer tokens of the REST API.
//
// All tokens are JWS (JSON Web Signature) strings signed with a single
// HMAC-SHA256 key shared by every instance behind one deployment.
type Authority struct {
	secret []byte
	ttl    time.Duration
}

// NewAuthority creates an Authority.
//
// # Args
//
// - secret: Key to sign and verify tokens
//
// - ttl: Time to live of issued tokens
func NewAuthority(secret []byte, ttl time.Duration) *Authority {
	return &Authority{secret: secret, ttl: ttl}
}

// Issue signs a token identifying user.
//
// # Args
//
// - user: User the token speaks for. UserId becomes the subject claim.
//
// # Returns
//
// - string: JWS token string
//
// - error: from [jwt.Token.SignedString]
func (a *Authority) Issue(user domain.User) (string, error) {
	now := time.Now()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// jti
			ID: uuid.NewString(),

			// sub
			Subject: user.UserId,

			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		UserName: user.UserName,
		Email:    user.Email,
	})
	return tok.SignedString(a.secret)
}

// Verify parses a token string and returns its claims.
//
// # Args
//
// - token: JWS token string, as Issue returns
//
// # Returns
//
// - *Claims: Claims of the token
//
// - error: [ErrInvalidToken] when the token is malformed, signed with
// another key, expired or not HMAC-SHA256,
// or any errors from [jwt.ParseWithClaims]
func (a *Authority) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Name {
			return nil, fmt.Errorf("%w: unexpected signing method: %s", ErrInvalidToken, t.Method.Alg())
		}
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, errors.Join(ErrInvalidToken, err)
		}
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, errors.Join(ErrInvalidToken, err)
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Join(ErrInvalidToken, err)
		}
		return nil, err
	}
	return claims, nil
}
