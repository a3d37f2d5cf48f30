// Package bus carries full dataset snapshots from the single writer (the
// editor) to any number of read-only consumers, such as a live chart
// renderer. Payloads are deep copies, never shared memory.
package bus

import (
	"sync"

	"github.com/paceview/paceview/internal/dataset"
)

// Bus fans dataset snapshots out to subscribers. A slow subscriber only
// ever misses intermediate snapshots: Publish replaces the pending
// snapshot instead of blocking the editor.
type Bus struct {
	mu     sync.Mutex
	subs   []chan *dataset.Dataset
	closed bool
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers a consumer. The channel holds at most one pending
// snapshot and is closed by Close.
func (b *Bus) Subscribe() <-chan *dataset.Dataset {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan *dataset.Dataset, 1)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Publish sends a deep copy of d to every subscriber. If a subscriber
// still holds an unread snapshot it is replaced with the newer one.
func (b *Bus) Publish(d *dataset.Dataset) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		snapshot := d.Clone()
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

// Close closes all subscriber channels. Publish becomes a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
