// Package token mints and validates the signed bearer tokens presented in
// Authorization headers. Two Issuer instances exist at runtime, one per
// principal variant, each with its own secret, so a user token can never be
// replayed against the admin surface or vice versa.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime applied when configuration supplies none.
const DefaultTTL = 120 * time.Hour // five days

// ErrInvalid is the single outcome for every failed validation: bad
// signature, structural corruption, wrong algorithm, or expiry. Callers must
// not be able to tell these apart from the returned error.
var ErrInvalid = errors.New("invalid token")

// Claims is the identity a valid token resolves to.
type Claims struct {
	ID       string
	Username string
}

// Issuer signs and verifies tokens with a single HS256 secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer for the given secret. A non-positive ttl falls
// back to DefaultTTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token binding the principal's id and handle, expiring at
// issuance time plus the issuer's ttl.
func (i *Issuer) Issue(id, username string) (string, error) {
	claims := jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      i.now().Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Validate parses and verifies a raw token. It fails closed: any problem
// yields ErrInvalid.
func (i *Issuer) Validate(raw string) (Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !tkn.Valid {
		return Claims{}, ErrInvalid
	}

	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	if id == "" {
		return Claims{}, ErrInvalid
	}
	return Claims{ID: id, Username: username}, nil
}
