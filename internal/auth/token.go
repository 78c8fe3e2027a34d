// Package auth issues and verifies bearer tokens and hashes passwords.
//
// Tokens are stateless HS256 JWTs. Nothing is stored server-side, so a token
// stays valid until it expires; there is no revocation list.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bizportal/internal/apperr"
	"bizportal/internal/model"
)

// MinSecretLen is the shortest HMAC secret accepted.
const MinSecretLen = 32

// Principal is the verified identity of a caller.
type Principal struct {
	AccountID string
	Email     string
	Role      model.Role
}

// Claims is the JWT payload.
type Claims struct {
	AccountID string     `json:"accountId"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer mints tokens for authenticated accounts.
type Issuer interface {
	Issue(p Principal) (string, error)
}

// Verifier checks tokens presented on protected requests.
type Verifier interface {
	Verify(token string) (*Principal, error)
}

// TokenService implements Issuer and Verifier with a shared HMAC secret.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

var (
	_ Issuer   = (*TokenService)(nil)
	_ Verifier = (*TokenService)(nil)
)

// Option customises a TokenService.
type Option func(*TokenService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService validates its inputs and returns a ready TokenService.
func NewTokenService(secret []byte, issuer string, ttl time.Duration, opts ...Option) (*TokenService, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLen)
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be greater than zero")
	}
	s := &TokenService{secret: secret, issuer: issuer, ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Issue signs a token for p valid for the configured TTL.
func (s *TokenService) Issue(p Principal) (string, error) {
	if strings.TrimSpace(p.AccountID) == "" {
		return "", errors.New("account id is required")
	}
	if !p.Role.Valid() {
		return "", fmt.Errorf("invalid role %q", p.Role)
	}

	now := s.now().UTC()
	c := Claims{
		AccountID: p.AccountID,
		Email:     p.Email,
		Role:      p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   p.AccountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the
// embedded principal. Every failure is reported as apperr.ErrUnauthenticated.
func (s *TokenService) Verify(token string) (*Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperr.Unauthenticated("missing token")
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}

	var c Claims
	tok, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Unauthenticated("token expired")
		}
		return nil, apperr.Unauthenticated("invalid token")
	}
	if !tok.Valid || c.AccountID == "" || c.Subject != c.AccountID || !c.Role.Valid() {
		return nil, apperr.Unauthenticated("invalid token")
	}
	return &Principal{AccountID: c.AccountID, Email: c.Email, Role: c.Role}, nil
}
