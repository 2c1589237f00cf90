// Package broadcast routes download progress events to at most one live subscriber per video.
package broadcast

import (
	"sync"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
)

// Subscriber receives events for one video. Send is called from a single goroutine at a time per video.
type Subscriber interface {
	Send(event *models.ProgressEvent) error
	Close() error
}

type Broadcaster struct {
	mu   sync.Mutex
	subs map[int64]*registration
}

type registration struct {
	sub Subscriber
	// serializes sends so events for one video keep emission order
	sendMu sync.Mutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int64]*registration)}
}

// Subscribe registers sub for videoID, closing any subscriber it replaces.
func (b *Broadcaster) Subscribe(videoID int64, sub Subscriber) {
	b.mu.Lock()
	prev := b.subs[videoID]
	b.subs[videoID] = &registration{sub: sub}
	b.mu.Unlock()

	if prev != nil && prev.sub != sub {
		_ = prev.sub.Close()
	}
}

// Unsubscribe removes sub only if it is still the current registration.
func (b *Broadcaster) Unsubscribe(videoID int64, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if reg, ok := b.subs[videoID]; ok && reg.sub == sub {
		delete(b.subs, videoID)
	}
}

// Publish delivers event to the current subscriber. A failed send drops the subscriber.
func (b *Broadcaster) Publish(videoID int64, event *models.ProgressEvent) {
	b.mu.Lock()
	reg := b.subs[videoID]
	b.mu.Unlock()
	if reg == nil {
		return
	}

	reg.sendMu.Lock()
	err := reg.sub.Send(event)
	reg.sendMu.Unlock()
	if err == nil {
		return
	}

	b.Unsubscribe(videoID, reg.sub)
	_ = reg.sub.Close()
}

// Subscribers reports how many videos have a live subscriber.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
