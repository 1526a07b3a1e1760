package users

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/auth"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pagination"
)

type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[uuid.UUID]*User)}
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.ErrUserNotFound
}

func (m *memStore) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperror.ErrUserNotFound
}

func (m *memStore) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return errEmailTaken
		}
	}
	u.ID = uuid.New()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) List(_ context.Context, p pagination.Params) ([]User, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (m *memStore) Update(_ context.Context, u *User, _ ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	delete(m.users, id)
	return ok, nil
}

func newTestService(t *testing.T) (*Service, *memStore, *auth.TokenManager) {
	t.Helper()
	store := newMemStore()
	tokens := auth.NewTokenManagerWith("test-secret", time.Hour)
	return &Service{
		repo:   store,
		hasher: auth.NewPasswordHasherWithCost(4),
		tokens: tokens,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, store, tokens
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, &RegisterRequest{Email: " User@Example.com ", Password: "secret1", Name: "User"})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", res.User.Email)
	assert.NotEqual(t, "secret1", res.User.Password)

	id, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id)

	_, err = svc.Register(ctx, &RegisterRequest{Email: "user@example.com", Password: "another", Name: "Dup"})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Equal(t, "Email already exists", appErr.Message)

	login, err := svc.Login(ctx, &LoginRequest{Email: "USER@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Email: "user@example.com", Password: "nope"}},
		{"unknown email", LoginRequest{Email: "ghost@example.com", Password: "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &tt.req)
			assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
		})
	}
}

func TestService_EnsureAdmin(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "admin@phimmoi.com", "admin123", "")
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := store.GetByEmail(ctx, "admin@phimmoi.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "Admin", admin.Name)

	created, err = svc.EnsureAdmin(ctx, "admin@phimmoi.com", "other", "Admin")
	require.NoError(t, err)
	assert.False(t, created, "second run is a no-op")

	_, err = svc.Register(ctx, &RegisterRequest{Email: "member@x.io", Password: "secret1", Name: "M"})
	require.NoError(t, err)
	created, err = svc.EnsureAdmin(ctx, "member@x.io", "ignored", "M")
	require.NoError(t, err)
	assert.False(t, created)

	member, err := store.GetByEmail(ctx, "member@x.io")
	require.NoError(t, err)
	assert.True(t, member.IsAdmin, "existing account is promoted")

	ok, err := svc.hasher.Compare(member.Password, "secret1")
	require.NoError(t, err)
	assert.True(t, ok, "password is kept")
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, &RegisterRequest{Email: "a@x.io", Password: "secret1", Name: "A"})
	require.NoError(t, err)
	id := res.User.ID

	name := "Renamed"
	isAdmin := true
	u, err := svc.Update(ctx, id, &UpdateUserRequest{Name: &name, IsAdmin: &isAdmin})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", u.Name)
	assert.True(t, u.IsAdmin)

	_, err = svc.Update(ctx, uuid.New(), &UpdateUserRequest{Name: &name})
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, id, id), apperror.ErrBadRequest)
	require.NoError(t, svc.Delete(ctx, uuid.New(), id))
	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), id), apperror.ErrUserNotFound)
}
