package dashboard

import (
	"sync"
	"time"
)

// Tick is one playback step published by the Player.
type Tick struct {
	NIntervals int
	At         time.Time
}

// Broker fans ticks out to subscribers. Slow subscribers miss ticks rather than
// blocking the publisher.
type Broker struct {
	mu   sync.Mutex
	subs map[chan Tick]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: map[chan Tick]struct{}{}}
}

func (b *Broker) Subscribe() chan Tick {
	ch := make(chan Tick, 8)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan Tick) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; !ok {
		return
	}
	delete(b.subs, ch)
	close(ch)
}

func (b *Broker) Publish(t Tick) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- t:
		default:
		}
	}
}

// Len returns the number of current subscribers.
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
