package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	testutils "github.com/alex-pricope/contest-voting/api/controllers/testing"
	"github.com/alex-pricope/contest-voting/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	_, router := setupTestServer(t)

	t.Run("Happy path - defaults before anything is stored", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/settings", nil, nil)
		assert.Equal(t, http.StatusOK, res.Code)

		var settings models.SettingsResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &settings))
		assert.Equal(t, models.DefaultEventName, settings.EventName)
		assert.Empty(t, settings.LogoURL)
	})

	t.Run("Unhappy path - update requires admin token", func(t *testing.T) {
		payload := models.UpdateSettingsRequest{EventName: "Music Night"}
		res := testutils.PerformRequest(router, http.MethodPut, "/api/settings", payload, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - empty event name", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPut, "/api/settings", models.UpdateSettingsRequest{}, adminHeaders)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Happy path - update and read back", func(t *testing.T) {
		payload := models.UpdateSettingsRequest{EventName: "Music Night", LogoURL: "memory://photos/logo"}
		res := testutils.PerformRequest(router, http.MethodPut, "/api/settings", payload, adminHeaders)
		assert.Equal(t, http.StatusOK, res.Code)

		getRes := testutils.PerformRequest(router, http.MethodGet, "/api/settings", nil, nil)
		require.Equal(t, http.StatusOK, getRes.Code)

		var settings models.SettingsResponse
		require.NoError(t, json.Unmarshal(getRes.Body.Bytes(), &settings))
		assert.Equal(t, "Music Night", settings.EventName)
		assert.Equal(t, "memory://photos/logo", settings.LogoURL)
	})

	t.Run("Happy path - last write wins", func(t *testing.T) {
		payload := models.UpdateSettingsRequest{EventName: "Music Night Vol. 2"}
		res := testutils.PerformRequest(router, http.MethodPut, "/api/settings", payload, adminHeaders)
		assert.Equal(t, http.StatusOK, res.Code)

		getRes := testutils.PerformRequest(router, http.MethodGet, "/api/settings", nil, nil)
		var settings models.SettingsResponse
		require.NoError(t, json.Unmarshal(getRes.Body.Bytes(), &settings))
		assert.Equal(t, "Music Night Vol. 2", settings.EventName)
		assert.Equal(t, "memory://photos/logo", settings.LogoURL, "Logo survives an update that omits it")
	})
}
