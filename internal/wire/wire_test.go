package wire

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"electrifind/internal/data/repository"
	"electrifind/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type apiUser struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email"`
	Role          string  `json:"role"`
	LoyaltyPoints int     `json:"loyaltyPoints"`
	IsVerified    *bool   `json:"isVerified"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	config := &utils.Config{
		App: utils.AppConfig{Name: "electrifind", Env: "test", Port: "0"},
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 168},
	}
	repo := &repository.Repository{User: repository.NewMemoryUserRepository()}

	return Wiring(repo, config, zap.NewNop())
}

func doJSON(t *testing.T, app *App, method, path, token string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	// Register
	rec, resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ali Khan",
		"phone":    "03001234567",
		"password": "Abcd1234",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)

	var registered apiUser
	require.NoError(t, json.Unmarshal(resp.User, &registered))
	assert.Equal(t, "customer", registered.Role)
	assert.Equal(t, "03001234567", registered.Phone)

	// Duplicate registration conflicts
	rec, resp = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ali Khan",
		"phone":    "03001234567",
		"password": "Abcd1234",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Phone number already registered", resp.Error)

	// Login
	rec, resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"phone":    "03001234567",
		"password": "Abcd1234",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, resp.Token)
	loginToken := resp.Token

	var loggedIn apiUser
	require.NoError(t, json.Unmarshal(resp.User, &loggedIn))
	require.NotNil(t, loggedIn.IsVerified)
	assert.False(t, *loggedIn.IsVerified)

	// Me
	rec, resp = doJSON(t, app, http.MethodGet, "/api/auth/me", loginToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Phone string `json:"phone"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	assert.Equal(t, "03001234567", me.Phone)

	// Change password
	rec, resp = doJSON(t, app, http.MethodPut, "/api/auth/password", loginToken, map[string]string{
		"currentPassword": "Abcd1234",
		"newPassword":     "Xyz98765",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, resp.Token)
	assert.NotEqual(t, loginToken, resp.Token)

	// Old password no longer logs in
	rec, resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"phone":    "03001234567",
		"password": "Abcd1234",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", resp.Error)

	// New password does
	rec, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"phone":    "03001234567",
		"password": "Xyz98765",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Logout acknowledges
	rec, resp = doJSON(t, app, http.MethodPost, "/api/auth/logout", loginToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestLoginUniformUnauthorized(t *testing.T) {
	app := newTestApp(t)

	rec, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ali Khan",
		"phone":    "03001234567",
		"password": "Abcd1234",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	recWrong, respWrong := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"phone":    "03001234567",
		"password": "Nope1234",
	})
	recUnknown, respUnknown := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"phone":    "03119999999",
		"password": "Abcd1234",
	})

	assert.Equal(t, http.StatusUnauthorized, recWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, respWrong.Error, respUnknown.Error)
}

func TestProfileUpdate(t *testing.T) {
	app := newTestApp(t)

	_, resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ali Khan",
		"phone":    "03001234567",
		"password": "Abcd1234",
	})
	token := resp.Token

	rec, resp := doJSON(t, app, http.MethodPut, "/api/auth/profile", token, map[string]any{
		"name": "Ali Raza Khan",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, "Ali Raza Khan", updated.Name)
	assert.Equal(t, "03001234567", updated.Phone, "partial update leaves other fields alone")

	// short name rejected
	rec, _ = doJSON(t, app, http.MethodPut, "/api/auth/profile", token, map[string]any{
		"name": "Al",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	app := newTestApp(t)

	_, customer := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ali Khan",
		"phone":    "03001234567",
		"password": "Abcd1234",
	})
	_, admin := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Site Admin",
		"phone":    "03211234567",
		"password": "Abcd1234",
		"role":     "admin",
	})

	// customer is refused
	rec, resp := doJSON(t, app, http.MethodGet, "/api/admin/users", customer.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, resp.Error, "customer")

	// admin gets the listing
	rec, _ = doJSON(t, app, http.MethodGet, "/api/admin/users", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// admin deactivates the customer account
	var registered apiUser
	require.NoError(t, json.Unmarshal(customer.User, &registered))
	rec, _ = doJSON(t, app, http.MethodPatch, "/api/admin/users/"+registered.ID+"/deactivate", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// deactivated account can no longer log in, with the explicit message
	rec, resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"phone":    "03001234567",
		"password": "Abcd1234",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, resp.Error, "deactivated")

	// and its still-valid token is refused on the next request
	rec, _ = doJSON(t, app, http.MethodGet, "/api/auth/me", customer.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHealthAndNotFound(t *testing.T) {
	app := newTestApp(t)

	rec, resp := doJSON(t, app, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, resp = doJSON(t, app, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", resp.Error)
}
