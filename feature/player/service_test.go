package player

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"holotable/core/apperr"
	"holotable/core/cache"
	"holotable/core/client/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNormalizeAllyCode(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		out   string
		valid bool
	}{
		{"Plain", "123456789", "123456789", true},
		{"Dashed", "123-456-789", "123456789", true},
		{"Spaced", " 123456789 ", "123456789", true},
		{"TooShort", "12345678", "", false},
		{"Letters", "12345678a", "", false},
		{"Empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := NormalizeAllyCode(tt.in)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.out, code)
			} else {
				assert.Error(t, err)
				assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
			}
		})
	}
}

func TestGetPlayer_CachesResult(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, cache.New(0), 4, zap.NewNop())
	ctx := context.Background()

	record := json.RawMessage(`{"allyCode":"123456789","name":"Alice"}`)
	mockClient.On("GetPlayer", mock.Anything, "123456789").Return(record, nil).Once()

	first, err := svc.GetPlayer(ctx, "123-456-789")
	require.NoError(t, err)
	assert.JSONEq(t, string(record), string(first))

	// Second read, dashed or not, is served from cache.
	second, err := svc.GetPlayer(ctx, "123456789")
	require.NoError(t, err)
	assert.JSONEq(t, string(record), string(second))

	mockClient.AssertNumberOfCalls(t, "GetPlayer", 1)
}

func TestGetPlayer_UpstreamErrorNotCached(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, cache.New(0), 4, zap.NewNop())
	ctx := context.Background()

	mockClient.On("GetPlayer", mock.Anything, "123456789").
		Return(nil, errors.New("upstream down")).Once()
	mockClient.On("GetPlayer", mock.Anything, "123456789").
		Return(json.RawMessage(`{"name":"Alice"}`), nil).Once()

	_, err := svc.GetPlayer(ctx, "123456789")
	require.Error(t, err)

	// The failure was not cached; the retry reaches upstream and succeeds.
	raw, err := svc.GetPlayer(ctx, "123456789")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alice"}`, string(raw))
}

func TestGetPlayers_FetchesBatch(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, cache.New(0), 2, zap.NewNop())
	ctx := context.Background()

	for _, code := range []string{"111111111", "222222222", "333333333"} {
		code := code
		mockClient.On("GetPlayer", mock.Anything, code).
			Return(json.RawMessage(`{"allyCode":"`+code+`"}`), nil).Once()
	}

	records, err := svc.GetPlayers(ctx, []string{"111-111-111", "222222222", "333333333"})
	require.NoError(t, err)
	assert.Len(t, records, 3)

	// Each record landed in the shared cache.
	raw, err := svc.GetPlayer(ctx, "222222222")
	require.NoError(t, err)
	assert.JSONEq(t, `{"allyCode":"222222222"}`, string(raw))
	mockClient.AssertNumberOfCalls(t, "GetPlayer", 3)
}

func TestGetPlayers_ToleratesPartialFailure(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, cache.New(0), 2, zap.NewNop())

	mockClient.On("GetPlayer", mock.Anything, "111111111").
		Return(json.RawMessage(`{"allyCode":"111111111"}`), nil)
	mockClient.On("GetPlayer", mock.Anything, "222222222").
		Return(nil, errors.New("upstream down"))

	records, err := svc.GetPlayers(context.Background(), []string{"111111111", "222222222"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.JSONEq(t, `{"allyCode":"111111111"}`, string(records[0]))
}

func TestGetPlayers_TotalFailureSurfaces(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, cache.New(0), 1, zap.NewNop())

	mockClient.On("GetPlayer", mock.Anything, mock.Anything).
		Return(nil, errors.New("upstream down"))

	_, err := svc.GetPlayers(context.Background(), []string{"111111111", "222222222"})
	require.Error(t, err)
}

func TestGetPlayers_EmptyBatchIsNotFound(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, cache.New(0), 4, zap.NewNop())

	_, err := svc.GetPlayers(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	mockClient.AssertNotCalled(t, "GetPlayer", mock.Anything, mock.Anything)
}

func TestGetPlayer_RejectsBadAllyCode(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, cache.New(0), 4, zap.NewNop())

	_, err := svc.GetPlayer(context.Background(), "not-a-code")
	require.Error(t, err)
	mockClient.AssertNotCalled(t, "GetPlayer", mock.Anything, mock.Anything)
}
