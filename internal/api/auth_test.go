package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"bhashaconnect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginAndProfile(t *testing.T) {
	_, r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Rajesh Kumar",
		"email":    "Rajesh@Example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var registered domain.User
	unmarshalData(t, env, "user", &registered)
	assert.Equal(t, "rajesh@example.com", registered.Email) // Email is lowercased
	assert.Equal(t, domain.RoleJobseeker, registered.Role)  // Default role

	// The password hash never leaves the server
	assert.NotContains(t, w.Body.String(), "password")

	// Login with the original-case email works
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "rajesh@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	var token string
	require.NoError(t, json.Unmarshal(env.Data["token"], &token))
	require.NotEmpty(t, token)

	// The token resolves to the registered profile
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me domain.User
	unmarshalData(t, decodeEnvelope(t, w), "user", &me)
	assert.Equal(t, registered.ID, me.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	conn, r := setupTest(t)
	createUser(t, conn, "Amit Patel", "amit@example.com", domain.RoleJobseeker)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "amit@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsDuplicateEmailAndAdminRole(t *testing.T) {
	conn, r := setupTest(t)
	createUser(t, conn, "Amit Patel", "amit@example.com", domain.RoleJobseeker)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Imposter",
		"email":    "amit@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Admin accounts are seeded, never self-registered
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Wannabe Admin",
		"email":    "new@example.com",
		"password": "password123",
		"role":     "admin",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Contains(t, env.Errors, "role must be one of: jobseeker, entrepreneur")
}

func TestRegisterStoreFailureIsInternalError(t *testing.T) {
	conn, r := setupTest(t)

	// A broken store is not a validation problem
	require.NoError(t, conn.Exec("DROP TABLE users").Error)
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Rajesh Kumar",
		"email":    "rajesh@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Internal server error", env.Message)
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	conn, r := setupTest(t)
	user, token := createUser(t, conn, "Amit Patel", "amit@example.com", domain.RoleJobseeker)

	// Garbage token
	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Missing header
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token for a deleted user fails closed
	require.NoError(t, conn.Delete(&domain.User{}, user.ID).Error)
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
