package mocks

import (
	"context"
	"encoding/json"

	"holotable/core/client"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of client.Client
type Client struct {
	mock.Mock
}

func (m *Client) GetMetadata(ctx context.Context) (*client.Metadata, error) {
	args := m.Called(ctx)
	if meta, ok := args.Get(0).(*client.Metadata); ok {
		return meta, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetGameData(ctx context.Context, version string, includePveUnits bool, segment int) (map[string]json.RawMessage, error) {
	args := m.Called(ctx, version, includePveUnits, segment)
	if data, ok := args.Get(0).(map[string]json.RawMessage); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetLocalizationBundle(ctx context.Context, version string, unzip bool) (*client.LocalizationBundle, error) {
	args := m.Called(ctx, version, unzip)
	if bundle, ok := args.Get(0).(*client.LocalizationBundle); ok {
		return bundle, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetPlayer(ctx context.Context, allyCode string) (json.RawMessage, error) {
	args := m.Called(ctx, allyCode)
	if raw, ok := args.Get(0).(json.RawMessage); ok {
		return raw, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetGuild(ctx context.Context, guildID string, includeRecentActivity bool) (json.RawMessage, error) {
	args := m.Called(ctx, guildID, includeRecentActivity)
	if raw, ok := args.Get(0).(json.RawMessage); ok {
		return raw, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetEvents(ctx context.Context) (json.RawMessage, error) {
	args := m.Called(ctx)
	if raw, ok := args.Get(0).(json.RawMessage); ok {
		return raw, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetSegmentEnum(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if segs, ok := args.Get(0).([]string); ok {
		return segs, args.Error(1)
	}
	return nil, args.Error(1)
}
