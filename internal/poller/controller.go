// Package poller owns the repeating refresh schedule of the holdings view.
//
// The Controller does not run timers itself. Start hands back a Tick that the
// caller arms (tea.Tick in the dashboard); when the tick fires, the caller asks
// Accept whether it still belongs to the live schedule. Stopping or restarting
// retires the old handle, so a tick armed before the switch is dropped instead
// of starting a second, overlapping schedule.
package poller

import (
	"fmt"
	"sync"
	"time"
)

// State of the holdings view's refresh schedule.
type State int

const (
	// Inactive means no schedule is live.
	Inactive State = iota
	// Active means exactly one schedule, identified by its handle, is live.
	Active
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "INACTIVE"
	case Active:
		return "ACTIVE"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tick is one pending firing of a schedule.
type Tick struct {
	Handle   uint64
	Interval time.Duration
}

// Controller enforces the INACTIVE / ACTIVE(handle) state machine.
type Controller struct {
	mu       sync.Mutex
	interval time.Duration
	state    State
	handle   uint64
	issued   uint64 // last handle handed out; handles are never reused
}

// New creates an inactive controller that schedules refreshes every interval.
func New(interval time.Duration) *Controller {
	return &Controller{interval: interval}
}

// Start activates the schedule and returns the first tick to arm. The caller
// refreshes immediately; the tick covers the next refresh. Starting while
// already active retires the previous schedule first.
func (c *Controller) Start() Tick {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.issued++
	c.handle = c.issued
	c.state = Active
	return Tick{Handle: c.handle, Interval: c.interval}
}

// Stop deactivates the schedule. Ticks already armed will be rejected by Accept.
// Requests already in flight are not aborted.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = Inactive
	c.handle = 0
}

// Accept reports whether t belongs to the live schedule. When it does the caller
// refreshes and re-arms the same tick.
func (c *Controller) Accept(t Tick) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state == Active && t.Handle != 0 && t.Handle == c.handle
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Active is shorthand for State() == Active.
func (c *Controller) Active() bool {
	return c.State() == Active
}

// Handle returns the live handle, or 0 when inactive.
func (c *Controller) Handle() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle
}

// Interval returns the refresh period.
func (c *Controller) Interval() time.Duration {
	return c.interval
}
