package guild

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"holotable/core/apperr"
	"holotable/core/cache"
	"holotable/core/client/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(mockClient *mocks.Client) *Service {
	return NewService(mockClient, cache.New(0), cache.New(0), 2, zap.NewNop())
}

func leaderRecord() json.RawMessage {
	return json.RawMessage(`{"allyCode":"111111111","guildId":"G-1"}`)
}

func guildWithRoster() json.RawMessage {
	return json.RawMessage(`{"id":"G-1","name":"Test Guild","roster":[
		{"allyCode":"111111111"},
		{"allyCode":"222222222"},
		{"allyCode":"333333333"}
	]}`)
}

func TestGetGuild_WithoutRoster(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := newTestService(mockClient)

	mockClient.On("GetPlayer", mock.Anything, "111111111").Return(leaderRecord(), nil)
	mockClient.On("GetGuild", mock.Anything, "G-1", true).Return(guildWithRoster(), nil)

	view, err := svc.GetGuild(context.Background(), "111-111-111", false)
	require.NoError(t, err)
	assert.Nil(t, view.Roster)

	var g map[string]any
	require.NoError(t, json.Unmarshal(view.Guild, &g))
	assert.Equal(t, "Test Guild", g["name"])
}

func TestGetGuild_ExpandsRoster(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := newTestService(mockClient)

	mockClient.On("GetPlayer", mock.Anything, "111111111").Return(leaderRecord(), nil)
	mockClient.On("GetGuild", mock.Anything, "G-1", true).Return(guildWithRoster(), nil)
	mockClient.On("GetPlayer", mock.Anything, "222222222").
		Return(json.RawMessage(`{"allyCode":"222222222"}`), nil)
	mockClient.On("GetPlayer", mock.Anything, "333333333").
		Return(json.RawMessage(`{"allyCode":"333333333"}`), nil)

	view, err := svc.GetGuild(context.Background(), "111111111", true)
	require.NoError(t, err)
	assert.Len(t, view.Roster, 3)

	// The leader was cached by the initial lookup, so only the two other
	// members hit upstream during expansion.
	mockClient.AssertNumberOfCalls(t, "GetPlayer", 3)
}

func TestGetGuild_ToleratesPartialRosterFailure(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := newTestService(mockClient)

	mockClient.On("GetPlayer", mock.Anything, "111111111").Return(leaderRecord(), nil)
	mockClient.On("GetGuild", mock.Anything, "G-1", true).Return(guildWithRoster(), nil)
	mockClient.On("GetPlayer", mock.Anything, "222222222").
		Return(nil, errors.New("timeout")).Once()
	mockClient.On("GetPlayer", mock.Anything, "333333333").
		Return(json.RawMessage(`{"allyCode":"333333333"}`), nil)

	view, err := svc.GetGuild(context.Background(), "111111111", true)
	require.NoError(t, err)
	// Leader (cached) + one successful member; the failed one is dropped.
	assert.Len(t, view.Roster, 2)
}

func TestGetGuild_TotalRosterFailureSurfaces(t *testing.T) {
	mockClient := new(mocks.Client)
	// Fresh caches so nothing is pre-warmed.
	svc := NewService(mockClient, cache.New(0), cache.New(0), 2, zap.NewNop())

	mockClient.On("GetPlayer", mock.Anything, "111111111").Return(leaderRecord(), nil).Once()
	mockClient.On("GetGuild", mock.Anything, "G-1", true).Return(json.RawMessage(
		`{"id":"G-1","roster":[{"allyCode":"222222222"},{"allyCode":"333333333"}]}`), nil)
	mockClient.On("GetPlayer", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("every member failed"))

	_, err := svc.GetGuild(context.Background(), "111111111", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every member failed")
}

func TestGetGuild_PlayerWithoutGuildIsNotFound(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := newTestService(mockClient)

	mockClient.On("GetPlayer", mock.Anything, "111111111").
		Return(json.RawMessage(`{"allyCode":"111111111","guildId":""}`), nil)

	_, err := svc.GetGuild(context.Background(), "111111111", false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetGuild_CachesGuildRecord(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := newTestService(mockClient)

	mockClient.On("GetPlayer", mock.Anything, "111111111").Return(leaderRecord(), nil)
	mockClient.On("GetGuild", mock.Anything, "G-1", true).Return(guildWithRoster(), nil).Once()

	_, err := svc.GetGuild(context.Background(), "111111111", false)
	require.NoError(t, err)
	_, err = svc.GetGuild(context.Background(), "111111111", false)
	require.NoError(t, err)

	mockClient.AssertNumberOfCalls(t, "GetGuild", 1)
}
