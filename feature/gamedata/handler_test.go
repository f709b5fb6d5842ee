package gamedata

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"holotable/core/client"
	"holotable/core/client/mocks"
	"holotable/core/server"
	"holotable/core/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client, *Service, *store.Store) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: server.ErrorHandler(zap.NewNop())})
	mockClient := new(mocks.Client)
	st := newTestStore(t)
	svc := NewService(mockClient, st, testDataConfig(), zap.NewNop())
	handler := NewHandler(svc, store.NewValidated(st, svc, zap.NewNop()))
	handler.RegisterRoutes(app)
	return app, mockClient, svc, st
}

func syncTestApp(t *testing.T, mockClient *mocks.Client, svc *Service) {
	t.Helper()
	mockClient.On("GetGameData", mock.Anything, "GD1", true, 0).Return(fullCollections(), nil)
	mockClient.On("GetLocalizationBundle", mock.Anything, "L1", false).Return(engUsBundle(), nil)
	_, err := svc.UpdateCheck(context.Background(), "GD1", "L1", false)
	require.NoError(t, err)
}

func TestHandleVersion(t *testing.T) {
	app, mockClient, svc, _ := setupTestApp(t)
	syncTestApp(t, mockClient, svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/version", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var state VersionState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, "GD1", state.GameDataVersion)
	assert.Contains(t, state.KnownCollections, "units")
}

func TestHandleRefresh(t *testing.T) {
	app, mockClient, _, _ := setupTestApp(t)

	mockClient.On("GetMetadata", mock.Anything).
		Return(&client.Metadata{LatestGamedataVersion: "GD1", LatestLocalizationBundleVersion: "L1"}, nil)
	mockClient.On("GetGameData", mock.Anything, "GD1", true, 0).Return(fullCollections(), nil)
	mockClient.On("GetLocalizationBundle", mock.Anything, "L1", false).Return(engUsBundle(), nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/refresh", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var state VersionState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, "GD1", state.GameDataVersion)
}

func TestHandleCollection(t *testing.T) {
	app, mockClient, svc, _ := setupTestApp(t)
	syncTestApp(t, mockClient, svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/data/units", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var units []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&units))
	require.Len(t, units, 1)
	assert.Equal(t, "VADER", units[0]["baseId"])
}

func TestHandleCollection_UnknownStaysUnavailable(t *testing.T) {
	app, mockClient, svc, _ := setupTestApp(t)
	syncTestApp(t, mockClient, svc)

	// The recovery sync runs (metadata + refetch) but cannot produce the
	// unknown collection, so the read fails terminally.
	mockClient.On("GetMetadata", mock.Anything).
		Return(&client.Metadata{LatestGamedataVersion: "GD1", LatestLocalizationBundleVersion: "L1"}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/data/noSuchCollection", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "unavailable", body["kind"])
}

func TestHandleLocalization(t *testing.T) {
	app, mockClient, svc, _ := setupTestApp(t)
	syncTestApp(t, mockClient, svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/localization/ENG_US", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var entries map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	assert.Equal(t, "Hello", entries["KEY_A"])
}

func TestHandleLookup(t *testing.T) {
	app, mockClient, svc, _ := setupTestApp(t)
	syncTestApp(t, mockClient, svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/lookup/unitLookup", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var units map[string]UnitMeta
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&units))
	assert.Contains(t, units, "VADER")

	resp, err = app.Test(httptest.NewRequest("GET", "/lookup/bogus", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
