package events

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"holotable/core/cache"
	"holotable/core/client/mocks"
	"holotable/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: server.ErrorHandler(zap.NewNop())})
	mockClient := new(mocks.Client)
	handler := NewHandler(NewService(mockClient, cache.New(0), zap.NewNop()))
	handler.RegisterRoutes(app)
	return app, mockClient
}

func TestHandleEvents(t *testing.T) {
	app, mockClient := setupTestApp(t)

	mockClient.On("GetEvents", mock.Anything).
		Return(json.RawMessage(`{"gameEvent":[{"id":"EVENT_1"}]}`), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/events", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body, "gameEvent")
}

func TestHandleEvents_SecondReadHitsCache(t *testing.T) {
	app, mockClient := setupTestApp(t)

	mockClient.On("GetEvents", mock.Anything).
		Return(json.RawMessage(`{"gameEvent":[]}`), nil)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/events", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}
	mockClient.AssertNumberOfCalls(t, "GetEvents", 1)
}

func TestHandleEvents_UpstreamFailure(t *testing.T) {
	app, mockClient := setupTestApp(t)

	mockClient.On("GetEvents", mock.Anything).
		Return(json.RawMessage(nil), assert.AnError)

	resp, err := app.Test(httptest.NewRequest("GET", "/events", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	feature := NewFeature(mockClient, cache.New(0), zap.NewNop())

	assert.Equal(t, "events", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
}
