package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"bhashaconnect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validScheme returns a payload passing every scheme constraint
func validScheme() map[string]any {
	return map[string]any{
		"title":       "PM Mudra Yojana",
		"description": "Collateral-free loans for micro enterprises.",
		"eligibility": "Indian citizens running small businesses.",
		"link":        "https://www.mudra.org.in",
		"language":    "English",
		"category":    "Finance",
	}
}

func TestSchemeMutationsAdminOnly(t *testing.T) {
	conn, r := setupTest(t)
	_, adminToken := createUser(t, conn, "Admin User", "admin@bhashaconnect.com", domain.RoleAdmin)
	_, entToken := createUser(t, conn, "Priya Sharma", "priya@example.com", domain.RoleEntrepreneur)

	// Entrepreneurs cannot create schemes even though they own other resources
	w := doJSON(t, r, http.MethodPost, "/api/schemes", entToken, validScheme())
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/schemes", adminToken, validScheme())
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Scheme
	unmarshalData(t, decodeEnvelope(t, w), "scheme", &created)
	assert.True(t, created.IsActive) // is_active defaults to true
	path := fmt.Sprintf("/api/schemes/%d", created.ID)

	// Update and delete are admin-only regardless of any ownership notion
	w = doJSON(t, r, http.MethodPut, path, entToken, validScheme())
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, r, http.MethodDelete, path, entToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateInactiveSchemePersistsFlag(t *testing.T) {
	conn, r := setupTest(t)
	_, adminToken := createUser(t, conn, "Admin User", "admin@bhashaconnect.com", domain.RoleAdmin)

	payload := validScheme()
	payload["is_active"] = false
	w := doJSON(t, r, http.MethodPost, "/api/schemes", adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Scheme
	unmarshalData(t, decodeEnvelope(t, w), "scheme", &created)
	assert.False(t, created.IsActive)

	// The stored row is inactive, not silently flipped back to active
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/schemes/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched domain.Scheme
	unmarshalData(t, decodeEnvelope(t, w), "scheme", &fetched)
	assert.False(t, fetched.IsActive)

	// Invisible in the default listing, reachable with is_active=false
	var schemes []domain.Scheme
	unmarshalData(t, decodeEnvelope(t, doJSON(t, r, http.MethodGet, "/api/schemes", "", nil)), "schemes", &schemes)
	assert.Empty(t, schemes)
	unmarshalData(t, decodeEnvelope(t, doJSON(t, r, http.MethodGet, "/api/schemes?is_active=false", "", nil)), "schemes", &schemes)
	require.Len(t, schemes, 1)
	assert.Equal(t, created.ID, schemes[0].ID)
}

func TestListSchemesDefaultsToActiveNewestFirst(t *testing.T) {
	conn, r := setupTest(t)
	base := time.Now().Add(-time.Hour)
	seed := []domain.Scheme{
		{Title: "Old Active", Description: "A ten char description.", Eligibility: "Anyone.", Language: "English", IsActive: true, CreatedAt: base},
		{Title: "Retired Scheme", Description: "A ten char description.", Eligibility: "Anyone.", Language: "English", IsActive: false, CreatedAt: base.Add(time.Minute)},
		{Title: "New Active", Description: "A ten char description.", Eligibility: "Anyone.", Language: "English", IsActive: true, CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range seed {
		require.NoError(t, conn.Create(&seed[i]).Error)
	}

	// is_active unset: only active rows, newest first
	w := doJSON(t, r, http.MethodGet, "/api/schemes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var schemes []domain.Scheme
	unmarshalData(t, env, "schemes", &schemes)
	require.Len(t, schemes, 2)
	assert.Equal(t, "New Active", schemes[0].Title)
	assert.Equal(t, "Old Active", schemes[1].Title)

	// The count query uses the same visibility predicate as the page query
	var pg struct {
		TotalItems int64 `json:"totalItems"`
	}
	unmarshalData(t, env, "pagination", &pg)
	assert.Equal(t, int64(2), pg.TotalItems)

	// Inactive rows are reachable only on request
	w = doJSON(t, r, http.MethodGet, "/api/schemes?is_active=false", "", nil)
	unmarshalData(t, decodeEnvelope(t, w), "schemes", &schemes)
	require.Len(t, schemes, 1)
	assert.Equal(t, "Retired Scheme", schemes[0].Title)
}

func TestSchemesByCategoryAndSearch(t *testing.T) {
	conn, r := setupTest(t)
	seed := []domain.Scheme{
		{Title: "Mudra Loans", Description: "Micro business finance support.", Eligibility: "Anyone.", Language: "English", Category: "Finance", IsActive: true},
		{Title: "Skill Mission", Description: "Vocational training programs.", Eligibility: "Anyone.", Language: "Hindi", Category: "Training", IsActive: true},
		{Title: "Hidden Finance", Description: "No longer offered.", Eligibility: "Anyone.", Language: "English", Category: "Finance", IsActive: false},
	}
	for i := range seed {
		require.NoError(t, conn.Create(&seed[i]).Error)
	}

	// Category browsing shows active schemes only
	w := doJSON(t, r, http.MethodGet, "/api/schemes/category/Finance", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var schemes []domain.Scheme
	unmarshalData(t, decodeEnvelope(t, w), "schemes", &schemes)
	require.Len(t, schemes, 1)
	assert.Equal(t, "Mudra Loans", schemes[0].Title)

	// Search matches title, description and category of active schemes
	w = doJSON(t, r, http.MethodGet, "/api/schemes/search/vocational", "", nil)
	var results []domain.Scheme
	unmarshalData(t, decodeEnvelope(t, w), "results", &results)
	require.Len(t, results, 1)
	assert.Equal(t, "Skill Mission", results[0].Title)
}

func TestSchemeValidation(t *testing.T) {
	conn, r := setupTest(t)
	_, adminToken := createUser(t, conn, "Admin User", "admin@bhashaconnect.com", domain.RoleAdmin)

	payload := map[string]any{
		"title":       "ok",        // Too short
		"description": "too short", // Nine characters
		"eligibility": "abc",       // Too short
		"link":        "not-a-url", // Malformed
		"language":    "English",
	}
	w := doJSON(t, r, http.MethodPost, "/api/schemes", adminToken, payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Len(t, env.Errors, 4)
	assert.Contains(t, env.Errors, "link must be a valid URL")
}
