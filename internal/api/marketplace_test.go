package api

import (
	"fmt"
	"net/http"
	"testing"

	"bhashaconnect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validMarketplaceEntry returns a payload passing every constraint
func validMarketplaceEntry() map[string]any {
	return map[string]any{
		"business_name":   "Sharma Organic Store",
		"owner_name":      "Priya Sharma",
		"product_service": "Organic vegetables and grains",
		"contact":         "priya@example.com",
		"language":        "Hindi",
		"location":        "Nagpur",
	}
}

func TestCreateMarketplaceEntryRoundtrip(t *testing.T) {
	conn, r := setupTest(t)
	user, token := createUser(t, conn, "Priya Sharma", "priya@example.com", domain.RoleEntrepreneur)

	w := doJSON(t, r, http.MethodPost, "/api/marketplace", token, validMarketplaceEntry())
	require.Equal(t, http.StatusCreated, w.Code)
	var created MarketplaceWithCreator
	unmarshalData(t, decodeEnvelope(t, w), "entry", &created)
	assert.Equal(t, user.ID, created.CreatedBy)
	assert.Equal(t, "Priya Sharma", created.CreatedByName)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/marketplace/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched MarketplaceWithCreator
	unmarshalData(t, decodeEnvelope(t, w), "entry", &fetched)
	assert.Equal(t, "Sharma Organic Store", fetched.BusinessName)
	assert.Equal(t, "Organic vegetables and grains", fetched.ProductService)
	assert.Equal(t, "Nagpur", fetched.Location)
}

func TestMarketplaceOptionalFields(t *testing.T) {
	conn, r := setupTest(t)
	_, token := createUser(t, conn, "Priya Sharma", "priya@example.com", domain.RoleEntrepreneur)

	// location and description are optional
	payload := validMarketplaceEntry()
	delete(payload, "location")
	w := doJSON(t, r, http.MethodPost, "/api/marketplace", token, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// contact below the minimum is rejected
	payload = validMarketplaceEntry()
	payload["contact"] = "abc"
	w = doJSON(t, r, http.MethodPost, "/api/marketplace", token, payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Contains(t, env.Errors, "contact must be at least 5 characters")
}

func TestSearchMarketplace(t *testing.T) {
	conn, r := setupTest(t)
	user, _ := createUser(t, conn, "Priya Sharma", "priya@example.com", domain.RoleEntrepreneur)
	seed := []domain.MarketplaceEntry{
		{BusinessName: "Sharma ORGANIC Store", OwnerName: "Priya", ProductService: "Vegetables", Contact: "12345", Language: "Hindi", CreatedBy: user.ID},
		{BusinessName: "Patel Hardware", OwnerName: "Amit", ProductService: "Tools and organic fertilizer", Contact: "12345", Language: "Hindi", CreatedBy: user.ID},
		{BusinessName: "City Tailors", OwnerName: "Rajesh", ProductService: "Stitching", Contact: "12345", Language: "Marathi", CreatedBy: user.ID},
	}
	for i := range seed {
		require.NoError(t, conn.Create(&seed[i]).Error)
	}

	// Case-insensitive substring across business_name, product_service, description
	w := doJSON(t, r, http.MethodGet, "/api/marketplace/search/organic", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var results []MarketplaceWithCreator
	unmarshalData(t, decodeEnvelope(t, w), "results", &results)
	require.Len(t, results, 2)
	for _, e := range results {
		assert.NotEqual(t, "City Tailors", e.BusinessName)
	}

	// Language restriction narrows the search
	w = doJSON(t, r, http.MethodGet, "/api/marketplace/search/organic?language=Marathi", "", nil)
	unmarshalData(t, decodeEnvelope(t, w), "results", &results)
	assert.Empty(t, results)
}

func TestListMarketplaceFilters(t *testing.T) {
	conn, r := setupTest(t)
	user, _ := createUser(t, conn, "Priya Sharma", "priya@example.com", domain.RoleEntrepreneur)
	seed := []domain.MarketplaceEntry{
		{BusinessName: "A", OwnerName: "Priya", ProductService: "Vegetables", Contact: "12345", Language: "Hindi", Location: "Nagpur", CreatedBy: user.ID},
		{BusinessName: "B", OwnerName: "Amit", ProductService: "Hardware", Contact: "12345", Language: "Marathi", Location: "Pune", CreatedBy: user.ID},
	}
	for i := range seed {
		require.NoError(t, conn.Create(&seed[i]).Error)
	}

	w := doJSON(t, r, http.MethodGet, "/api/marketplace?language=Hindi", "", nil)
	var entries []MarketplaceWithCreator
	unmarshalData(t, decodeEnvelope(t, w), "marketplace", &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].BusinessName)

	// Location is a substring match
	w = doJSON(t, r, http.MethodGet, "/api/marketplace?location=agpu", "", nil)
	unmarshalData(t, decodeEnvelope(t, w), "marketplace", &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].BusinessName)
}
