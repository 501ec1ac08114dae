package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jobboard/jobboard/internal/shared"
)

var (
	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = shared.Validation("missing email or password")
	// ErrUserExists is returned when registering an email already in use.
	ErrUserExists = shared.Conflict("user already exists")
)

// TokenIssuer signs bearer tokens for authenticated accounts.
type TokenIssuer interface {
	Issue(id shared.Identity) (string, time.Time, error)
}

// Service wraps registration and login rules.
type Service struct {
	repo   Repository
	hasher *Hasher
	tokens TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

// NewService constructs a new Service.
func NewService(repo Repository, hasher *Hasher, tokens TokenIssuer) *Service {
	if hasher == nil {
		hasher = NewHasher(DefaultCost)
	}
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// Register creates an account for email. The stored hash never leaves the
// service; the returned Account carries only id, email and created_at.
func (s *Service) Register(ctx context.Context, email, password string) (*Account, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	var created *Account
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		exists, err := repo.EmailExists(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return ErrUserExists
		}
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return err
		}
		created, err = repo.Create(ctx, email, hash)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Account{ID: created.ID, Email: created.Email, CreatedAt: created.CreatedAt}, nil
}

// Login checks the credentials and issues a bearer token. Unknown emails and
// wrong passwords fail with the same error after the same bcrypt work.
func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	if email == "" || password == "" {
		return Token{}, ErrMissingCredentials
	}
	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.hasher.Verify(s.dummy(), password)
			return Token{}, shared.ErrInvalidCredentials
		}
		return Token{}, err
	}
	if !s.hasher.Verify(acc.PasswordHash, password) {
		return Token{}, shared.ErrInvalidCredentials
	}

	value, expiresAt, err := s.tokens.Issue(shared.Identity{AccountID: acc.ID, Email: acc.Email})
	if err != nil {
		return Token{}, fmt.Errorf("auth: issue token: %w", err)
	}
	return Token{Value: value, ExpiresAt: expiresAt}, nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("jobboard-dummy-password")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
