package pages

import (
	"context"
	"slices"
	"sync"
)

// feed is the Subscription used by every store. Publishers never block:
// snapshots queue until the consumer reads them or the feed closes.
type feed struct {
	ch   chan Snapshot
	done chan struct{}
	wake chan struct{}

	mu      sync.Mutex
	pending []Snapshot

	once sync.Once
	stop func()
}

func newFeed(ctx context.Context, stop func()) *feed {
	f := &feed{
		ch:   make(chan Snapshot),
		done: make(chan struct{}),
		wake: make(chan struct{}, 1),
		stop: stop,
	}
	go f.run()
	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				f.Close()
			case <-f.done:
			}
		}()
	}
	return f
}

func (f *feed) C() <-chan Snapshot { return f.ch }

func (f *feed) Close() {
	f.once.Do(func() {
		close(f.done)
		if f.stop != nil {
			f.stop()
		}
	})
}

func (f *feed) closed() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *feed) publish(s Snapshot) {
	if f.closed() {
		return
	}
	f.mu.Lock()
	f.pending = append(f.pending, s)
	f.mu.Unlock()
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *feed) run() {
	defer close(f.ch)
	for {
		select {
		case <-f.done:
			return
		case <-f.wake:
		}
		for {
			f.mu.Lock()
			if len(f.pending) == 0 {
				f.mu.Unlock()
				break
			}
			next := f.pending[0]
			f.pending = slices.Delete(f.pending, 0, 1)
			f.mu.Unlock()

			select {
			case f.ch <- next:
			case <-f.done:
				return
			}
		}
	}
}
