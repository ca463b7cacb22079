package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agri-sahayak/sahayak-cli/internal/adapters/localstore"
	"github.com/agri-sahayak/sahayak-cli/internal/app/greeting"
	"github.com/agri-sahayak/sahayak-cli/internal/app/identity"
	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

type stubBackend struct {
	domain.Backend

	getUserErr error
	loginID    domain.UserID
	loginErr   error
	createID   domain.UserID
}

func (s *stubBackend) GetUser(_ context.Context, id domain.UserID) (*domain.Profile, error) {
	if s.getUserErr != nil {
		return nil, s.getUserErr
	}
	return &domain.Profile{ID: id}, nil
}

func (s *stubBackend) Login(context.Context, string, string) (domain.UserID, string, error) {
	return s.loginID, "Ravi", s.loginErr
}

func (s *stubBackend) CreateProfile(context.Context, domain.NewProfile) (domain.UserID, error) {
	return s.createID, nil
}

func newManager(t *testing.T, b domain.Backend) (*identity.Manager, *localstore.Store) {
	t.Helper()
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	return identity.NewManager(b, store, greeting.NewCatalog(), domain.LangEnglish), store
}

func TestRestoreNoStoredIdentity(t *testing.T) {
	m, _ := newManager(t, &stubBackend{})
	_, err := m.Restore(context.Background())
	assert.ErrorIs(t, err, identity.ErrNoStoredIdentity)
}

func TestRestoreValidIdentity(t *testing.T) {
	m, store := newManager(t, &stubBackend{})
	require.NoError(t, store.Set(localstore.KeyUserID, "u1"))
	require.NoError(t, store.Set(localstore.KeyUserName, "Ravi"))

	ident, err := m.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("u1"), ident.UserID)
	assert.Equal(t, "Ravi", ident.Name)
}

func TestRestoreStaleIdentityClearedSilently(t *testing.T) {
	m, store := newManager(t, &stubBackend{getUserErr: errors.New("404")})
	require.NoError(t, store.Set(localstore.KeyUserID, "gone"))
	require.NoError(t, store.Set(localstore.KeyUserName, "Ravi"))

	_, err := m.Restore(context.Background())
	assert.ErrorIs(t, err, identity.ErrNoStoredIdentity)

	_, ok := store.Get(localstore.KeyUserID)
	assert.False(t, ok, "stale id removed from local state")
	_, ok = store.Get(localstore.KeyUserName)
	assert.False(t, ok)
}

func TestLoginValidation(t *testing.T) {
	m, _ := newManager(t, &stubBackend{})

	_, err := m.Login(context.Background(), "  ", "pw")
	var verr *identity.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please enter a valid email and password.", verr.Message)
}

func TestLoginPersistsIdentity(t *testing.T) {
	m, store := newManager(t, &stubBackend{loginID: "u9"})

	ident, err := m.Login(context.Background(), "ravi@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("u9"), ident.UserID)

	v, _ := store.Get(localstore.KeyUserID)
	assert.Equal(t, "u9", v)
	v, _ = store.Get(localstore.KeyUserName)
	assert.Equal(t, "Ravi", v)
}

func TestSignupValidation(t *testing.T) {
	m, _ := newManager(t, &stubBackend{createID: "u2"})

	_, err := m.Signup(context.Background(), domain.NewProfile{Phone: "123"})
	var verr *identity.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Name is required.", verr.Message)

	_, err = m.Signup(context.Background(), domain.NewProfile{Name: "Ravi"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Phone number is required.", verr.Message)

	ident, err := m.Signup(context.Background(), domain.NewProfile{Name: "Ravi", Phone: "123"})
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("u2"), ident.UserID)
}

func TestLogoutClearsState(t *testing.T) {
	m, store := newManager(t, &stubBackend{loginID: "u1"})
	_, err := m.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	m.Logout()
	_, ok := store.Get(localstore.KeyUserID)
	assert.False(t, ok)
}
