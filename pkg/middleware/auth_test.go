package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"electrifind/internal/data/entity"
	"electrifind/internal/data/repository"
	"electrifind/internal/usecase"
	"electrifind/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedUser(t *testing.T, repo repository.UserRepository, role entity.UserRole, active bool) *entity.User {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         "Ali Khan",
		Phone:        "03001234567",
		PasswordHash: "irrelevant",
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func newGuard(t *testing.T) (usecase.TokenService, repository.UserRepository, func(http.Handler) http.Handler) {
	t.Helper()
	tokens := usecase.NewTokenService(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	repo := repository.NewMemoryUserRepository()
	return tokens, repo, Authenticate(tokens, repo, zap.NewNop())
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	_, _, authenticate := newGuard(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "no bearer prefix", header: "Token abc"},
		{name: "missing token part", header: "Bearer"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			authenticate(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthenticate_UserNoLongerExists(t *testing.T) {
	tokens, _, authenticate := newGuard(t)

	// token for an account that was never stored
	signed, _, err := tokens.Issue(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()

	authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthenticate_DeactivatedUser(t *testing.T) {
	tokens, repo, authenticate := newGuard(t)
	user := seedUser(t, repo, entity.RoleCustomer, false)

	signed, _, err := tokens.Issue(user.ID, user.Role)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()

	authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticate_AttachesIdentity(t *testing.T) {
	tokens, repo, authenticate := newGuard(t)
	user := seedUser(t, repo, entity.RoleShopkeeper, true)

	signed, _, err := tokens.Issue(user.ID, user.Role)
	require.NoError(t, err)

	var gotID uuid.UUID
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = utils.GetUserIDFromContext(r.Context())
		gotRole, _ = utils.GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()

	authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, gotID)
	assert.Equal(t, string(entity.RoleShopkeeper), gotRole)
}

func TestAuthorize(t *testing.T) {
	authorize := Authorize(zap.NewNop(), string(entity.RoleAdmin))

	tests := []struct {
		name     string
		role     string
		wantCode int
	}{
		{name: "admin allowed", role: "admin", wantCode: http.StatusOK},
		{name: "customer forbidden", role: "customer", wantCode: http.StatusForbidden},
		{name: "shopkeeper forbidden", role: "shopkeeper", wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			ctx := utils.SetUserContext(req.Context(), uuid.New(), tt.role)
			rec := httptest.NewRecorder()

			authorize(okHandler()).ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusForbidden {
				assert.Contains(t, rec.Body.String(), tt.role)
			}
		})
	}
}

func TestAuthorize_NoIdentityInContext(t *testing.T) {
	authorize := Authorize(zap.NewNop(), string(entity.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()

	authorize(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
