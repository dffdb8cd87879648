package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/jpark/commute-connect/internal/domain"
	"github.com/jpark/commute-connect/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestRouteHandler_ListCatalog(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.SeedRoute(t, ts.DB.DB, "MI", "MI", domain.RouteTypeTrain)
	testutil.SeedRoute(t, ts.DB.DB, "LW", "LW", domain.RouteTypeTrain)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("requires auth", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/routes"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertErrorCode(t, resp, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("ordered catalog", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/routes"), token, nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result struct {
			Routes []struct {
				ID        string `json:"route_id"`
				ShortName string `json:"route_short_name"`
				Type      string `json:"route_type"`
			} `json:"routes"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		require.Len(t, result.Routes, 2)
		assert.Equal(t, "LW", result.Routes[0].ShortName)
		assert.Equal(t, "MI", result.Routes[1].ShortName)
		assert.Equal(t, "train", result.Routes[0].Type)
	})
}

func TestRouteHandler_UserRoutes(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.SeedRoute(t, ts.DB.DB, "LW", "LW", domain.RouteTypeTrain)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	// Add a route
	resp := doJSON(t, http.MethodPost, ts.APIURL("/user/routes"), token, map[string]string{"route_id": "LW"})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var added struct {
		Route struct {
			ID      string `json:"id"`
			RouteID string `json:"route_id"`
		} `json:"route"`
	}
	testutil.AssertJSONResponse(t, resp, &added)
	resp.Body.Close()
	assert.Equal(t, "LW", added.Route.RouteID)

	// Adding it again conflicts
	resp = doJSON(t, http.MethodPost, ts.APIURL("/user/routes"), token, map[string]string{"route_id": "LW"})
	testutil.AssertErrorCode(t, resp, http.StatusConflict, "conflict")
	resp.Body.Close()

	// Unknown route
	resp = doJSON(t, http.MethodPost, ts.APIURL("/user/routes"), token, map[string]string{"route_id": "XX"})
	testutil.AssertErrorCode(t, resp, http.StatusNotFound, "not_found")
	resp.Body.Close()

	// Listing shows exactly one joined entry
	resp = doJSON(t, http.MethodGet, ts.APIURL("/user/routes"), token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var listed struct {
		Routes []struct {
			ID    string `json:"id"`
			Route struct {
				LongName string `json:"route_long_name"`
			} `json:"route"`
		} `json:"routes"`
	}
	testutil.AssertJSONResponse(t, resp, &listed)
	resp.Body.Close()
	require.Len(t, listed.Routes, 1)
	assert.Equal(t, "LW Line", listed.Routes[0].Route.LongName)

	// Another user cannot remove it
	_, otherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	resp = doJSON(t, http.MethodDelete, ts.APIURL(fmt.Sprintf("/user/routes/%s", added.Route.ID)), otherToken, nil)
	testutil.AssertErrorCode(t, resp, http.StatusForbidden, "forbidden")
	resp.Body.Close()

	// The owner can
	resp = doJSON(t, http.MethodDelete, ts.APIURL(fmt.Sprintf("/user/routes/%s", added.Route.ID)), token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	// Removing it again is not found
	resp = doJSON(t, http.MethodDelete, ts.APIURL(fmt.Sprintf("/user/routes/%s", added.Route.ID)), token, nil)
	testutil.AssertErrorCode(t, resp, http.StatusNotFound, "not_found")
	resp.Body.Close()
}
