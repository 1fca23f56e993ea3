package poll

import (
	"sync"
	"time"
)

// Fetch is invoked once per tick. It receives the epoch of the loop that
// scheduled it so late results can be recognized and dropped: a response is
// only applied while Valid(key, epoch) still holds.
type Fetch func(epoch int64)

// ValidFunc is re-checked before every tick. When it reports false the loop
// stops itself without firing; this is how a channel dies when its owning
// view or project context has moved on.
type ValidFunc func() bool

type channel struct {
	epoch  int64
	cancel chan struct{}
}

// Controller runs at most one repeating fetch loop per named channel.
// Starting a channel that is already running replaces the old loop, so
// timers never accumulate across view switches.
type Controller struct {
	mu       sync.Mutex
	epochs   map[string]int64
	channels map[string]*channel
}

// NewController creates an empty controller
func NewController() *Controller {
	return &Controller{
		epochs:   make(map[string]int64),
		channels: make(map[string]*channel),
	}
}

// Start begins polling the channel: fetch fires immediately, then every
// interval. Any previous loop for the key is cancelled first. Returns the
// epoch of the new loop.
func (c *Controller) Start(key string, interval time.Duration, valid ValidFunc, fetch Fetch) int64 {
	c.mu.Lock()
	if ch, ok := c.channels[key]; ok {
		close(ch.cancel)
	}
	c.epochs[key]++
	epoch := c.epochs[key]
	ch := &channel{epoch: epoch, cancel: make(chan struct{})}
	c.channels[key] = ch
	c.mu.Unlock()

	go c.run(key, ch, interval, valid, fetch)
	return epoch
}

func (c *Controller) run(key string, ch *channel, interval time.Duration, valid ValidFunc, fetch Fetch) {
	if valid != nil && !valid() {
		c.remove(key, ch.epoch)
		return
	}
	fetch(ch.epoch)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ch.cancel:
			return
		case <-ticker.C:
			if valid != nil && !valid() {
				c.remove(key, ch.epoch)
				return
			}
			// A failed fetch does not cancel future ticks; errors are the
			// fetch callback's problem.
			fetch(ch.epoch)
		}
	}
}

// Stop cancels the channel's loop. Calling it when no loop exists is a no-op.
func (c *Controller) Stop(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ch, ok := c.channels[key]; ok {
		close(ch.cancel)
		delete(c.channels, key)
	}
}

// StopAll cancels every active loop
func (c *Controller) StopAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, ch := range c.channels {
		close(ch.cancel)
		delete(c.channels, key)
	}
}

// Valid reports whether epoch is still the live loop for the channel.
// Consumers check this before applying a fetched result, which is what makes
// the slow-response-vs-next-tick race harmless: a stale epoch is discarded.
func (c *Controller) Valid(key string, epoch int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.channels[key]
	return ok && ch.epoch == epoch
}

// Active reports whether the channel currently has a loop
func (c *Controller) Active(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.channels[key]
	return ok
}

// remove drops the channel only if it still belongs to the given epoch,
// so a self-stopping stale loop cannot kill its replacement.
func (c *Controller) remove(key string, epoch int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ch, ok := c.channels[key]; ok && ch.epoch == epoch {
		delete(c.channels, key)
	}
}
