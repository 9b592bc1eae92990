// Package debounce provides the trailing-edge debouncer behind the search
// input: every keystroke reschedules a single timer, and only the last event
// in a quiet window reaches the filter.
package debounce

import (
	"strings"
	"sync"
	"time"
)

// DefaultWindow is the quiet period before a search fires.
const DefaultWindow = 300 * time.Millisecond

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Clock schedules timers. The production clock wraps time.AfterFunc; tests
// inject a virtual clock so no wall time passes.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Debouncer rate-limits a stream of input events. Each Input cancels the
// pending timer and schedules a new one, so only the most recent event per
// quiet window fires. Trailing edge only: there is no leading-edge trigger
// and no max-wait cap.
type Debouncer struct {
	mu     sync.Mutex
	clock  Clock
	window time.Duration
	fire   func(string)

	timer   Timer
	pending string
	gen     uint64
}

// New creates a debouncer that calls fire with the trimmed text of the
// surviving event. A zero window means DefaultWindow.
func New(window time.Duration, fire func(string)) *Debouncer {
	return newWithClock(window, fire, realClock{})
}

func newWithClock(window time.Duration, fire func(string), clock Clock) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{clock: clock, window: window, fire: fire}
}

// Input records the current full text value and restarts the quiet window.
func (d *Debouncer) Input(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = text
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.window, func() {
		d.fireIfCurrent(gen)
	})
}

// Flush cancels any pending timer and fires with the given text immediately.
// Bound to the input's cancellation key.
func (d *Debouncer) Flush(text string) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.mu.Unlock()

	d.fire(strings.TrimSpace(text))
}

// Cancel drops any pending invocation without firing.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// fireIfCurrent delivers the pending text unless a newer event superseded it.
// A stopped timer can still have been mid-flight; the generation check makes
// cancellation authoritative.
func (d *Debouncer) fireIfCurrent(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	text := strings.TrimSpace(d.pending)
	d.timer = nil
	d.mu.Unlock()

	d.fire(text)
}
