package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobboard/jobboard/internal/auth"
	"github.com/jobboard/jobboard/internal/shared"
	"github.com/jobboard/jobboard/internal/testing/memstore"
	"github.com/jobboard/jobboard/internal/token"
	_ "github.com/jobboard/jobboard/testing"
)

func newService(t *testing.T) (*auth.Service, *memstore.Accounts, *token.Manager) {
	t.Helper()
	tokens, err := token.NewManager("test-secret", time.Hour)
	require.NoError(t, err)
	repo := memstore.NewAccounts()
	return auth.NewService(repo, auth.NewHasher(bcrypt.MinCost), tokens), repo, tokens
}

func TestRegisterStoresHashOnly(t *testing.T) {
	svc, repo, _ := newService(t)

	acc, err := svc.Register(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", acc.Email)
	assert.NotZero(t, acc.ID)
	assert.Empty(t, acc.PasswordHash)

	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo, _ := newService(t)
	_, err := svc.Register(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)

	for _, password := range []string{"pw", "other", "third-password"} {
		_, err := svc.Register(context.Background(), "a@x.com", password)
		require.ErrorIs(t, err, shared.ErrConflict)
		assert.ErrorIs(t, err, auth.ErrUserExists)
	}
	assert.Equal(t, 1, repo.Count())
}

func TestRegisterDuplicateEmailWithLongPassword(t *testing.T) {
	svc, repo, _ := newService(t)
	_, err := svc.Register(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@x.com", strings.Repeat("p", 80))
	require.ErrorIs(t, err, shared.ErrConflict)
	assert.NotErrorIs(t, err, shared.ErrValidation)
	assert.Equal(t, 1, repo.Count())
}

func TestRegisterEmailIsCaseSensitive(t *testing.T) {
	svc, repo, _ := newService(t)
	_, err := svc.Register(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "A@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Count())
}

func TestRegisterMissingFields(t *testing.T) {
	svc, repo, _ := newService(t)
	for _, tc := range [][2]string{{"", "pw"}, {"a@x.com", ""}, {"", ""}} {
		_, err := svc.Register(context.Background(), tc[0], tc[1])
		assert.ErrorIs(t, err, shared.ErrValidation)
	}
	assert.Zero(t, repo.Count())
}

func TestRegisterPasswordTooLong(t *testing.T) {
	svc, _, _ := newService(t)
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Register(context.Background(), "a@x.com", string(long))
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestLoginIssuesTokenForAccount(t *testing.T) {
	svc, _, tokens := newService(t)
	acc, err := svc.Register(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)

	tok, err := svc.Login(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, tok.Value)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	id, err := tokens.Verify(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", id.Email)
	assert.Equal(t, acc.ID, id.AccountID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Register(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), "a@x.com", "nope")
	_, unknownEmail := svc.Login(context.Background(), "b@x.com", "pw")

	require.ErrorIs(t, wrongPassword, shared.ErrUnauthenticated)
	require.ErrorIs(t, unknownEmail, shared.ErrUnauthenticated)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, "invalid email or password", wrongPassword.Error())
}

func TestLoginMissingFields(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

type failingRepo struct {
	*memstore.Accounts
	err error
}

func (f failingRepo) FindByEmail(context.Context, string) (*auth.Account, error) {
	return nil, f.err
}

func TestLoginPropagatesStoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	tokens, err := token.NewManager("s", time.Hour)
	require.NoError(t, err)
	svc := auth.NewService(failingRepo{Accounts: memstore.NewAccounts(), err: boom}, auth.NewHasher(bcrypt.MinCost), tokens)

	_, err = svc.Login(context.Background(), "a@x.com", "pw")
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestHasherCostFallback(t *testing.T) {
	h := auth.NewHasher(0)
	hash, err := h.Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, auth.DefaultCost, cost)
	assert.True(t, h.Verify(hash, "pw"))
	assert.False(t, h.Verify(hash, "other"))
}
