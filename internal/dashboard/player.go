package dashboard

import (
	"context"
	"ev-route-dashboard/internal/platform/metrics"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultFrameInterval = 500 * time.Millisecond

// Player is the playback timer. It owns the interval count, advances it with
// LoopAnimation on every tick and publishes it to the broker.
type Player struct {
	length   int
	interval time.Duration
	broker   *Broker

	mu     sync.Mutex
	n      int
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPlayer(length int, interval time.Duration, broker *Broker) *Player {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Player{length: length, interval: interval, broker: broker}
}

// Current returns the latest interval count.
func (p *Player) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.n
}

// Advance moves playback one step and publishes the new count.
func (p *Player) Advance(now time.Time) Tick {
	p.mu.Lock()
	p.n = LoopAnimation(p.n, p.length)
	t := Tick{NIntervals: p.n, At: now}
	p.mu.Unlock()

	p.broker.Publish(t)
	metrics.FramesPublished.Inc()
	return t
}

// Start runs the timer in a goroutine until ctx is done or Stop is called.
func (p *Player) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	log.WithFields(log.Fields{
		"frames":   p.length,
		"interval": p.interval.String(),
	}).Info("playback started")

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				p.Advance(now)
			}
		}
	}()
}

// Stop halts the timer and waits for it to exit.
func (p *Player) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Info("playback stopped")
}
