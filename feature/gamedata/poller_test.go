package gamedata

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"holotable/core/client"
	"holotable/core/client/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestPoller_NotifiesOnVersionChange(t *testing.T) {
	mockClient := new(mocks.Client)

	baseline := &client.Metadata{LatestGamedataVersion: "GD1", LatestLocalizationBundleVersion: "L1"}
	changed := &client.Metadata{LatestGamedataVersion: "GD2", LatestLocalizationBundleVersion: "L1"}

	mockClient.On("GetMetadata", mock.Anything).Return(baseline, nil).Once()
	mockClient.On("GetMetadata", mock.Anything).Return(changed, nil)

	var notified atomic.Int64
	var got atomic.Value
	p := NewPoller(mockClient, 20*time.Millisecond, func(meta *client.Metadata) {
		notified.Add(1)
		got.Store(meta)
	}, zap.NewNop())

	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, func() bool { return notified.Load() >= 1 })

	meta := got.Load().(*client.Metadata)
	assert.Equal(t, "GD2", meta.LatestGamedataVersion)

	// The baseline advanced, so the same versions do not notify again.
	before := notified.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, before, notified.Load())
}

func TestPoller_SwallowsPollErrors(t *testing.T) {
	mockClient := new(mocks.Client)

	baseline := &client.Metadata{LatestGamedataVersion: "GD1", LatestLocalizationBundleVersion: "L1"}
	changed := &client.Metadata{LatestGamedataVersion: "GD2", LatestLocalizationBundleVersion: "L1"}

	mockClient.On("GetMetadata", mock.Anything).Return(baseline, nil).Once()
	mockClient.On("GetMetadata", mock.Anything).Return(nil, errors.New("upstream unreachable")).Times(2)
	mockClient.On("GetMetadata", mock.Anything).Return(changed, nil)

	var notified atomic.Int64
	p := NewPoller(mockClient, 15*time.Millisecond, func(*client.Metadata) {
		notified.Add(1)
	}, zap.NewNop())

	p.Start(context.Background())
	defer p.Stop()

	// The two failing ticks are swallowed and the poller keeps going until
	// the change comes through.
	waitFor(t, func() bool { return notified.Load() >= 1 })
}

func TestPoller_StopEndsTicking(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("GetMetadata", mock.Anything).
		Return(&client.Metadata{LatestGamedataVersion: "GD1"}, nil)

	p := NewPoller(mockClient, 10*time.Millisecond, func(*client.Metadata) {}, zap.NewNop())
	p.Start(context.Background())

	time.Sleep(30 * time.Millisecond)
	p.Stop()

	calls := len(mockClient.Calls)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, len(mockClient.Calls), "no polls after Stop")
}

func TestPoller_BaselineFailureStillStarts(t *testing.T) {
	mockClient := new(mocks.Client)

	mockClient.On("GetMetadata", mock.Anything).Return(nil, errors.New("down")).Once()
	mockClient.On("GetMetadata", mock.Anything).
		Return(&client.Metadata{LatestGamedataVersion: "GD1", LatestLocalizationBundleVersion: "L1"}, nil)

	var notified atomic.Int64
	p := NewPoller(mockClient, 15*time.Millisecond, func(*client.Metadata) {
		notified.Add(1)
	}, zap.NewNop())

	p.Start(context.Background())
	defer p.Stop()

	// With an empty baseline, the first successful poll counts as a change.
	waitFor(t, func() bool { return notified.Load() >= 1 })
}
