// Package token issues and validates the signed bearer tokens that carry a
// user's identity between requests. Tokens are stateless: validity is fully
// determined by the HMAC signature and the embedded expiry, so a token cannot
// be revoked before it expires.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpiredToken marks a structurally valid, correctly signed token
	// whose expiry has passed. Callers treat it differently from the other
	// failures: it signals "re-authenticate", not "corrupt or hostile".
	ErrExpiredToken = errors.New("token expired")

	// ErrMalformedToken covers unparseable structure and bad signatures.
	ErrMalformedToken = errors.New("token malformed or signature invalid")

	// ErrWrongAlgorithm marks a token signed with anything other than HS256,
	// including the "none" algorithm.
	ErrWrongAlgorithm = errors.New("token signed with unexpected algorithm")
)

// Claims is the validated content of a token. Nothing in here is read before
// the signature has been verified.
type Claims struct {
	Subject string
	Role    string
}

// Codec signs and verifies bearer tokens with a symmetric key. The key is set
// once at construction and never changes, so a Codec is safe for concurrent
// use.
type Codec struct {
	key    []byte
	issuer string
	now    func() time.Time
}

// New returns a Codec signing with the given symmetric key.
func New(secret, issuer string) *Codec {
	return &Codec{key: []byte(secret), issuer: issuer, now: time.Now}
}

// Issue creates a signed token for subject expiring ttl from now. Custom
// string claims (the role claim in practice) are embedded alongside the
// registered issuer, subject, issued-at and expiry claims.
func (c *Codec) Issue(subject string, claims map[string]string, ttl time.Duration) (string, error) {
	now := c.now()

	mc := jwt.MapClaims{
		"iss": c.issuer,
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	for k, v := range claims {
		mc[k] = v
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(c.key)
}

// Validate verifies the signature and expiry of raw and returns its claims.
// Expiry is a strict wall-clock comparison with no leeway.
func (c *Codec) Validate(raw string) (Claims, error) {
	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrWrongAlgorithm
		}
		return c.key, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))

	switch {
	case err == nil && parsed.Valid:
		// fall through to claim extraction
	case errors.Is(err, ErrWrongAlgorithm):
		return Claims{}, ErrWrongAlgorithm
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpiredToken
	default:
		return Claims{}, ErrMalformedToken
	}

	subject, err := mc.GetSubject()
	if err != nil || subject == "" {
		return Claims{}, ErrMalformedToken
	}

	role, _ := mc["role"].(string)
	return Claims{Subject: subject, Role: role}, nil
}
