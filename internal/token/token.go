// Package token issues and verifies the HS256 bearer tokens handed out at
// login.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jobboard/jobboard/internal/shared"
)

// DefaultTTL is the lifetime of an issued token.
const DefaultTTL = time.Hour

var (
	errHeaderMissing   = shared.Unauthenticated("authorization header required")
	errHeaderMalformed = shared.Unauthenticated("authorization header must be Bearer <token>")
	errExpired         = shared.Unauthenticated("token expired")
	errInvalid         = shared.Unauthenticated("invalid token")
)

// Claims carried by a bearer token. Subject holds the account id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Option customises a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// Manager signs and verifies tokens with a single shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager builds a Manager. An empty secret is rejected; a non-positive
// ttl falls back to DefaultTTL.
func NewManager(secret string, ttl time.Duration, opts ...Option) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue signs a token for id and returns it with its expiry.
func (m *Manager) Issue(id shared.Identity) (string, time.Time, error) {
	now := m.now()
	claims := Claims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.AccountID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token: sign: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Verify checks the signature and expiry of raw and returns the identity it
// carries. Every failure is an unauthenticated error.
func (m *Manager) Verify(raw string) (shared.Identity, error) {
	if raw == "" {
		return shared.Identity{}, errInvalid
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return shared.Identity{}, errExpired
		}
		return shared.Identity{}, errInvalid
	}
	if !parsed.Valid {
		return shared.Identity{}, errInvalid
	}
	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || accountID <= 0 {
		return shared.Identity{}, errInvalid
	}
	return shared.Identity{AccountID: accountID, Email: claims.Email}, nil
}

// VerifyHeader verifies the token in an Authorization header value.
func (m *Manager) VerifyHeader(header string) (shared.Identity, error) {
	raw, err := FromHeader(header)
	if err != nil {
		return shared.Identity{}, err
	}
	return m.Verify(raw)
}

// FromHeader extracts the raw token from "Bearer <token>".
func FromHeader(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errHeaderMissing
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", errHeaderMalformed
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errHeaderMalformed
	}
	return raw, nil
}
