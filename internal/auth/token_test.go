package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizportal/internal/apperr"
	"bizportal/internal/model"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestService(t *testing.T, now func() time.Time) *TokenService {
	t.Helper()
	s, err := NewTokenService(testSecret, "bizportal", 7*24*time.Hour, WithClock(now))
	require.NoError(t, err)
	return s
}

func TestNewTokenService(t *testing.T) {
	_, err := NewTokenService([]byte("short"), "bizportal", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(testSecret, "bizportal", 0)
	assert.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	s := newTestService(t, time.Now)
	p := Principal{AccountID: "6f1c4c3e-3c1e-4e63-9a4a-2f0b0f0e0a01", Email: "alice@co.com", Role: model.RoleClient}

	tok, err := s.Issue(p)
	require.NoError(t, err)

	got, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestIssueRejectsBadPrincipal(t *testing.T) {
	s := newTestService(t, time.Now)

	_, err := s.Issue(Principal{Email: "x@y.z", Role: model.RoleAdmin})
	assert.Error(t, err)

	_, err = s.Issue(Principal{AccountID: "id", Role: model.Role("root")})
	assert.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := issuedAt
	s := newTestService(t, func() time.Time { return clock })

	tok, err := s.Issue(Principal{AccountID: "acc-1", Email: "a@b.c", Role: model.RoleAdmin})
	require.NoError(t, err)

	clock = issuedAt.Add(6 * 24 * time.Hour)
	_, err = s.Verify(tok)
	assert.NoError(t, err)

	clock = issuedAt.Add(7*24*time.Hour + time.Second)
	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	assert.Equal(t, "token expired", apperr.Message(err))
}

func TestVerifyWrongSecret(t *testing.T) {
	s := newTestService(t, time.Now)
	other, err := NewTokenService([]byte("ffffffffffffffffffffffffffffffff"), "bizportal", time.Hour)
	require.NoError(t, err)

	tok, err := other.Issue(Principal{AccountID: "acc-1", Role: model.RoleClient})
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestVerifyRejectsForgedPayloads(t *testing.T) {
	s := newTestService(t, time.Now)
	now := time.Now()

	sign := func(method jwt.SigningMethod, key any, c Claims) string {
		tok, err := jwt.NewWithClaims(method, c).SignedString(key)
		require.NoError(t, err)
		return tok
	}
	base := func() Claims {
		return Claims{
			AccountID: "acc-1",
			Email:     "a@b.c",
			Role:      model.RoleClient,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "bizportal",
				Subject:   "acc-1",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
	}

	noExp := base()
	noExp.ExpiresAt = nil

	badRole := base()
	badRole.Role = "owner"

	subjectMismatch := base()
	subjectMismatch.Subject = "acc-2"

	wrongIssuer := base()
	wrongIssuer.Issuer = "someone-else"

	tests := map[string]string{
		"empty":            "",
		"garbage":          "not-a-jwt",
		"none algorithm":   sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, base()),
		"hs512":            sign(jwt.SigningMethodHS512, testSecret, base()),
		"missing exp":      sign(jwt.SigningMethodHS256, testSecret, noExp),
		"unknown role":     sign(jwt.SigningMethodHS256, testSecret, badRole),
		"subject mismatch": sign(jwt.SigningMethodHS256, testSecret, subjectMismatch),
		"wrong issuer":     sign(jwt.SigningMethodHS256, testSecret, wrongIssuer),
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := s.Verify(tok)
			assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		})
	}

	t.Run("tampered payload", func(t *testing.T) {
		tok := sign(jwt.SigningMethodHS256, testSecret, base())
		parts := strings.Split(tok, ".")
		forged := base()
		forged.Role = model.RoleAdmin
		forgedTok := sign(jwt.SigningMethodHS256, []byte("ffffffffffffffffffffffffffffffff"), forged)
		parts[1] = strings.Split(forgedTok, ".")[1]

		_, err := s.Verify(strings.Join(parts, "."))
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})
}
