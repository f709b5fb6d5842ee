package gamedata

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"holotable/core/client"

	"go.uber.org/zap"
)

// Poller periodically asks upstream for the latest version pair and invokes
// a callback when either track changed. A failed poll is logged and
// swallowed so one bad tick never kills the recurring check.
type Poller struct {
	client   client.Client
	interval time.Duration
	onChange func(meta *client.Metadata)
	logger   *zap.Logger

	mu       sync.Mutex
	baseline client.Metadata

	inFlight atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewPoller creates a poller firing every interval.
func NewPoller(c client.Client, interval time.Duration, onChange func(meta *client.Metadata), logger *zap.Logger) *Poller {
	return &Poller{
		client:   c,
		interval: interval,
		onChange: onChange,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start records a baseline version pair and begins ticking. If the baseline
// fetch fails the poller starts anyway with an empty baseline, so the first
// successful poll registers as a change.
func (p *Poller) Start(ctx context.Context) {
	if meta, err := p.client.GetMetadata(ctx); err != nil {
		p.logger.Warn("Could not record poller baseline", zap.Error(err))
	} else {
		p.mu.Lock()
		p.baseline = *meta
		p.mu.Unlock()
	}

	go p.run(ctx)
	p.logger.Info("Update poller started", zap.Duration("interval", p.interval))
}

// Stop cancels future ticks. An in-flight poll is not interrupted, only its
// recurrence.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
	<-p.done
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// poll runs one check. Overlapping ticks are skipped: if an interval is
// shorter than a poll's latency the late tick is dropped, not queued.
func (p *Poller) poll(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.logger.Debug("Skipping poll, previous one still in flight")
		return
	}
	defer p.inFlight.Store(false)

	meta, err := p.client.GetMetadata(ctx)
	if err != nil {
		p.logger.Warn("Update poll failed", zap.Error(err))
		return
	}

	p.mu.Lock()
	changed := meta.LatestGamedataVersion != p.baseline.LatestGamedataVersion ||
		meta.LatestLocalizationBundleVersion != p.baseline.LatestLocalizationBundleVersion
	if changed {
		p.baseline = *meta
	}
	p.mu.Unlock()

	if !changed {
		return
	}

	p.logger.Info("Upstream version change detected",
		zap.String("game_data_version", meta.LatestGamedataVersion),
		zap.String("localization_version", meta.LatestLocalizationBundleVersion))
	p.onChange(meta)
}
