// Package auth decodes the session token the shell is started with so the
// header can show who is signed in.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zlovtnik/gshell/pkg/fp"
)

// ErrNoToken is returned when there is no token to decode.
var ErrNoToken = errors.New("no session token")

// Claims represents the claims in the session token.
type Claims struct {
	User         string `json:"user"`
	LoginSession string `json:"login_session"`
	TenantID     string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// Identity is the signed-in user as displayed by the shell.
type Identity struct {
	User      string
	Tenant    string
	ExpiresAt fp.Option[time.Time]
}

// Label renders the identity as user@tenant, or just the user when there is
// no tenant.
func (i Identity) Label() string {
	if i.Tenant == "" {
		return i.User
	}
	return i.User + "@" + i.Tenant
}

// Expired reports whether the token behind the identity has expired at now.
// Identities without an expiry never expire.
func (i Identity) Expired(now time.Time) bool {
	return fp.FoldOpt(
		func() bool { return false },
		func(exp time.Time) bool { return !now.Before(exp) },
	)(i.ExpiresAt)
}

// ParseUnverified decodes the claims without checking the signature. Only use
// the result for display.
func ParseUnverified(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}

// ValidateToken verifies an HS256 token with secret and returns its claims.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("expected HS256 signing method, got %s", token.Method.Alg())
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Identify turns a token into an Identity. With a secret the token is
// verified first; without one it is only decoded.
func Identify(tokenString, secret string) (Identity, error) {
	var (
		claims *Claims
		err    error
	)
	if secret != "" {
		claims, err = ValidateToken(tokenString, secret)
	} else {
		claims, err = ParseUnverified(tokenString)
	}
	if err != nil {
		return Identity{}, err
	}

	user := claims.User
	if user == "" {
		user = claims.Subject
	}
	id := Identity{User: user, Tenant: claims.TenantID, ExpiresAt: fp.None[time.Time]()}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = fp.Some(claims.ExpiresAt.Time)
	}
	return id, nil
}
