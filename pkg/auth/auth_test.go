package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
)

type fakeLookup map[uuid.UUID]*AuthUser

func (f fakeLookup) LookupUser(_ context.Context, id uuid.UUID) (*AuthUser, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, apperror.ErrInvalidToken.WithMessage("User no longer exists")
}

func TestMiddleware_extractToken(t *testing.T) {
	m := &Middleware{}

	tests := []struct {
		name       string
		authHeader string
		queryToken string
		want       string
	}{
		{name: "bearer token in header", authHeader: "Bearer eyJhbGciOiJIUzI1NiJ9", want: "eyJhbGciOiJIUzI1NiJ9"},
		{name: "no token", want: ""},
		{name: "non-bearer auth header", authHeader: "Basic dXNlcjpwYXNz", want: ""},
		{name: "token in query parameter", queryToken: "query-token-123", want: "query-token-123"},
		{name: "header takes precedence over query", authHeader: "Bearer header-token", queryToken: "query-token", want: "header-token"},
		{name: "empty bearer", authHeader: "Bearer ", want: ""},
		{name: "bearer without space", authHeader: "Bearertoken", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/auth/me"
			if tt.queryToken != "" {
				target += "?token=" + url.QueryEscape(tt.queryToken)
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			assert.Equal(t, tt.want, m.extractToken(req))
		})
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManagerWith("secret", time.Hour)
	id := uuid.New()

	token, err := tm.Issue(id)
	require.NoError(t, err)

	got, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenManager_Rejects(t *testing.T) {
	id := uuid.New()
	issuer := NewTokenManagerWith("secret", time.Hour)
	valid, err := issuer.Issue(id)
	require.NoError(t, err)

	expiredIssuer := NewTokenManagerWith("secret", time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue(id)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: id.String()}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		verify  *TokenManager
		token   string
		wantErr *apperror.Error
	}{
		{"wrong secret", NewTokenManagerWith("other", time.Hour), valid, apperror.ErrInvalidToken},
		{"expired", issuer, expired, apperror.ErrTokenExpired},
		{"garbage", issuer, "not.a.jwt", apperror.ErrInvalidToken},
		{"alg none", issuer, noneAlg, apperror.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verify.Verify(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasherWithCost(4)

	hash, err := h.Hash("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	ok, err := h.Compare(hash, "admin123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Compare("not-a-hash", "admin123")
	assert.Error(t, err)
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(2)
	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"), "buckets are per IP")

	disabled := NewIPRateLimiter(0)
	assert.Nil(t, disabled)
	assert.True(t, disabled.Allow("1.1.1.1"))
}

func newMiddlewareFixture(t *testing.T) (*Middleware, *TokenManager, *AuthUser, *AuthUser) {
	t.Helper()
	tm := NewTokenManagerWith("secret", time.Hour)
	member := &AuthUser{ID: uuid.New(), Email: "u@x.io", Name: "U"}
	admin := &AuthUser{ID: uuid.New(), Email: "a@x.io", Name: "A", IsAdmin: true}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewMiddleware(tm, fakeLookup{member.ID: member, admin.ID: admin}, log)
	return m, tm, member, admin
}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, token string) (*AuthUser, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *AuthUser
	err := mw(func(c echo.Context) error {
		seen = GetUser(c)
		return nil
	})(c)
	return seen, err
}

func TestRequireAuth(t *testing.T) {
	m, tm, member, _ := newMiddlewareFixture(t)

	token, err := tm.Issue(member.ID)
	require.NoError(t, err)

	seen, err := runMiddleware(t, m.RequireAuth(), token)
	require.NoError(t, err)
	assert.Equal(t, member, seen)

	_, err = runMiddleware(t, m.RequireAuth(), "")
	assert.True(t, errors.Is(err, apperror.ErrMissingToken))

	ghost, err := tm.Issue(uuid.New())
	require.NoError(t, err)
	_, err = runMiddleware(t, m.RequireAuth(), ghost)
	assert.True(t, errors.Is(err, apperror.ErrInvalidToken))
}

func TestRequireAdmin(t *testing.T) {
	m, tm, member, admin := newMiddlewareFixture(t)

	adminToken, err := tm.Issue(admin.ID)
	require.NoError(t, err)
	memberToken, err := tm.Issue(member.ID)
	require.NoError(t, err)

	seen, err := runMiddleware(t, m.RequireAdmin(), adminToken)
	require.NoError(t, err)
	assert.Equal(t, admin, seen)

	_, err = runMiddleware(t, m.RequireAdmin(), memberToken)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)

	_, err = runMiddleware(t, m.RequireAdmin(), "")
	appErr, ok = apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
}
