// Package identity owns the signed-in user: restored from local state at
// startup, created by login or signup, torn down by logout. Components take
// the Identity value instead of reading ambient globals.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/agri-sahayak/sahayak-cli/internal/adapters/localstore"
	"github.com/agri-sahayak/sahayak-cli/internal/app/greeting"
	"github.com/agri-sahayak/sahayak-cli/internal/domain"
	"github.com/agri-sahayak/sahayak-cli/internal/observability"
)

// Identity is the session context threaded through the client.
type Identity struct {
	UserID domain.UserID
	Name   string
}

// ValidationError is a blocked form submission: no request was sent, and
// Message is already localized for inline display.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var ErrNoStoredIdentity = errors.New("identity: no stored user")

type Manager struct {
	backend domain.Backend
	store   domain.StateStore
	tr      greeting.Translator
	lang    domain.LanguageCode
}

func NewManager(backend domain.Backend, store domain.StateStore, tr greeting.Translator, lang domain.LanguageCode) *Manager {
	return &Manager{backend: backend, store: store, tr: tr, lang: lang}
}

// Restore rebuilds the identity from local state, verifying the stored id
// still resolves on the backend. A stale id is cleared silently and the
// caller is sent back to sign-in.
func (m *Manager) Restore(ctx context.Context) (*Identity, error) {
	id, ok := m.store.Get(localstore.KeyUserID)
	if !ok || id == "" {
		return nil, ErrNoStoredIdentity
	}

	if _, err := m.backend.GetUser(ctx, domain.UserID(id)); err != nil {
		observability.LoggerFromContext(ctx).Info("stored identity no longer resolves; clearing",
			"user_id", id, "error", err)
		_ = m.store.Delete(localstore.KeyUserID)
		_ = m.store.Delete(localstore.KeyUserName)
		return nil, ErrNoStoredIdentity
	}

	name, _ := m.store.Get(localstore.KeyUserName)
	return &Identity{UserID: domain.UserID(id), Name: name}, nil
}

func (m *Manager) Login(ctx context.Context, email, password string) (*Identity, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, &ValidationError{Message: greeting.TOr(m.tr, "invalidCredentials", m.lang,
			"Please enter a valid email and password.")}
	}

	userID, name, err := m.backend.Login(ctx, email, password)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("login failed", "error", err)
		return nil, err
	}

	ident := &Identity{UserID: userID, Name: name}
	m.persist(ident)
	return ident, nil
}

func (m *Manager) Signup(ctx context.Context, in domain.NewProfile) (*Identity, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" {
		return nil, &ValidationError{Message: greeting.TOr(m.tr, "nameRequired", m.lang, "Name is required.")}
	}
	if in.Phone == "" {
		return nil, &ValidationError{Message: greeting.TOr(m.tr, "phoneNumberRequired", m.lang,
			"Phone number is required.")}
	}

	userID, err := m.backend.CreateProfile(ctx, in)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("profile creation failed", "error", err)
		return nil, err
	}

	ident := &Identity{UserID: userID, Name: in.Name}
	m.persist(ident)
	return ident, nil
}

func (m *Manager) Logout() {
	_ = m.store.Delete(localstore.KeyUserID)
	_ = m.store.Delete(localstore.KeyUserName)
}

func (m *Manager) persist(ident *Identity) {
	_ = m.store.Set(localstore.KeyUserID, string(ident.UserID))
	_ = m.store.Set(localstore.KeyUserName, ident.Name)
}
