// Package notify keeps the transient add-to-cart toast of each session and
// dismisses it after a fixed delay.
package notify

import (
	"sync"
	"time"
)

// DefaultDuration is how long a toast stays open.
const DefaultDuration = 1100 * time.Millisecond

// Toast is the visible notification state of one session.
type Toast struct {
	Open bool   `json:"open"`
	Text string `json:"text"`
}

type entry struct {
	text  string
	gen   uint64
	timer *time.Timer
}

// Board holds at most one open toast per key.
type Board struct {
	mu       sync.Mutex
	duration time.Duration
	entries  map[string]*entry
	gen      uint64
}

// NewBoard returns a Board whose toasts close after d. A non-positive d uses
// DefaultDuration.
func NewBoard(d time.Duration) *Board {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Board{duration: d, entries: make(map[string]*entry)}
}

// Show opens a toast for key, replacing any open one and restarting the
// dismiss timer.
func (b *Board) Show(key, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.entries[key]; ok {
		e.timer.Stop()
	}
	b.gen++
	gen := b.gen
	e := &entry{text: text, gen: gen}
	e.timer = time.AfterFunc(b.duration, func() { b.expire(key, gen) })
	b.entries[key] = e
}

// Hide closes the toast for key immediately.
func (b *Board) Hide(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.entries[key]; ok {
		e.timer.Stop()
		delete(b.entries, key)
	}
}

// Current returns the toast state for key.
func (b *Board) Current(key string) Toast {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok {
		return Toast{}
	}
	return Toast{Open: true, Text: e.text}
}

// Notifier returns a callback that shows toasts for key.
func (b *Board) Notifier(key string) func(text string) {
	return func(text string) {
		b.Show(key, text)
	}
}

func (b *Board) expire(key string, gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A newer Show owns the entry; its own timer will close it.
	if e, ok := b.entries[key]; ok && e.gen == gen {
		delete(b.entries, key)
	}
}
