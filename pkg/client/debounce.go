package client

import (
	"sync"
	"time"
)

// DefaultDebounceDelay matches the search box behavior of the original UI.
const DefaultDebounceDelay = 300 * time.Millisecond

// SearchDebouncer coalesces rapid search-term changes: the callback fires
// once per quiet period with the latest term, and consecutive duplicates
// are suppressed. This bounds the request rate while the user types.
type SearchDebouncer struct {
	delay time.Duration
	fn    func(term string)

	mu       sync.Mutex
	timer    *time.Timer
	lastSent string
	sentOnce bool
	closed   bool
}

func NewSearchDebouncer(delay time.Duration, fn func(term string)) *SearchDebouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &SearchDebouncer{
		delay: delay,
		fn:    fn,
	}
}

// Input feeds the current value of the search box. Each call resets the
// quiet-period timer.
func (d *SearchDebouncer) Input(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(term)
	})
}

func (d *SearchDebouncer) fire(term string) {
	d.mu.Lock()
	if d.closed || (d.sentOnce && term == d.lastSent) {
		d.mu.Unlock()
		return
	}
	d.lastSent = term
	d.sentOnce = true
	d.mu.Unlock()

	d.fn(term)
}

// Close cancels any pending emission.
func (d *SearchDebouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
