package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCities(t *testing.T) {
	_, app, db := newTestServer(t)
	seedTestCity(t, db, "Lisbon", "Portugal", 85)
	seedTestCity(t, db, "Porto", "Portugal", 52)
	seedTestCity(t, db, "Tokyo", "Japan", 98)

	resp := doJSON(t, app, http.MethodGet, "/api/cities/search?q=LISBON", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cities := decodeEnvelope(t, resp).Data["cities"].([]any)
	require.Len(t, cities, 1)
	assert.Equal(t, "Lisbon", cities[0].(map[string]any)["name"])
}

func TestSearchCities_ByCountry(t *testing.T) {
	_, app, db := newTestServer(t)
	seedTestCity(t, db, "Lisbon", "Portugal", 85)
	seedTestCity(t, db, "Porto", "Portugal", 52)
	seedTestCity(t, db, "Tokyo", "Japan", 98)

	resp := doJSON(t, app, http.MethodGet, "/api/cities/search?q=portugal", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cities := decodeEnvelope(t, resp).Data["cities"].([]any)
	require.Len(t, cities, 2)
	// Results come back in popularity order.
	assert.Equal(t, "Lisbon", cities[0].(map[string]any)["name"])
}

func TestSearchCities_EmptyQuery(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/cities/search?q=+", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPopularCities(t *testing.T) {
	_, app, db := newTestServer(t)
	seedTestCity(t, db, "Lisbon", "Portugal", 85)
	seedTestCity(t, db, "Tokyo", "Japan", 98)
	seedTestCity(t, db, "Porto", "Portugal", 52)

	resp := doJSON(t, app, http.MethodGet, "/api/cities/popular?limit=2", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cities := decodeEnvelope(t, resp).Data["cities"].([]any)
	require.Len(t, cities, 2)
	assert.Equal(t, "Tokyo", cities[0].(map[string]any)["name"])
	assert.Equal(t, "Lisbon", cities[1].(map[string]any)["name"])
}

func TestSavedCities(t *testing.T) {
	_, app, db := newTestServer(t)
	token, _ := registerUser(t, app, "saved@example.com")
	lisbon := seedTestCity(t, db, "Lisbon", "Portugal", 85)

	save := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/cities/me/saved/%d", lisbon.ID), token, nil)
	require.Equal(t, http.StatusCreated, save.StatusCode)

	// Saving twice is idempotent.
	again := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/cities/me/saved/%d", lisbon.ID), token, nil)
	require.Equal(t, http.StatusCreated, again.StatusCode)

	list := doJSON(t, app, http.MethodGet, "/api/cities/me/saved/", token, nil)
	require.Equal(t, http.StatusOK, list.StatusCode)
	cities := decodeEnvelope(t, list).Data["cities"].([]any)
	require.Len(t, cities, 1)

	unsave := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/cities/me/saved/%d", lisbon.ID), token, nil)
	require.Equal(t, http.StatusOK, unsave.StatusCode)

	empty := doJSON(t, app, http.MethodGet, "/api/cities/me/saved/", token, nil)
	require.Equal(t, http.StatusOK, empty.StatusCode)
	assert.Empty(t, decodeEnvelope(t, empty).Data["cities"])
}

func TestSaveCity_UnknownCity(t *testing.T) {
	_, app, _ := newTestServer(t)
	token, _ := registerUser(t, app, "savemissing@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/cities/me/saved/4242", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSavedCities_RequireAuth(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/cities/me/saved/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
