// Package popup implements the anchored popup primitive shared by the menu
// and selector widgets: the open/closed controller, the trigger keymap and
// the placement of floating content relative to its trigger.
package popup

import (
	"github.com/google/uuid"

	"github.com/zlovtnik/gshell/internal/route"
)

// Controller owns the open/closed state of one popup instance.
//
// The state only ever changes through Open, Close and SetOpen, or through a
// navigation signal received while mounted. Watchers are called on real
// transitions only.
type Controller struct {
	signal   route.Signal
	subID    uuid.UUID
	mounted  bool
	detached bool
	open     bool
	watchers []func(open bool)
}

// NewController creates a closed controller. signal may be nil, in which case
// the controller never reacts to navigation.
func NewController(signal route.Signal) *Controller {
	return &Controller{signal: signal}
}

// IsOpen reports the current state.
func (c *Controller) IsOpen() bool {
	return c.open
}

// Mounted reports whether the controller holds a navigation subscription.
func (c *Controller) Mounted() bool {
	return c.mounted
}

// Watch registers fn to be called after every transition.
func (c *Controller) Watch(fn func(open bool)) {
	if fn != nil {
		c.watchers = append(c.watchers, fn)
	}
}

// Mount subscribes to the navigation signal. Calling it again while mounted
// is a no-op, so it is safe to call from every render pass.
func (c *Controller) Mount() {
	if c.mounted {
		return
	}
	c.detached = false
	c.mounted = true
	if c.signal != nil {
		c.subID = c.signal.Subscribe(func(string) { c.Close() })
	}
}

// Unmount forces the popup closed, then releases the navigation
// subscription. It is idempotent; after it returns no watcher is called
// until the controller is mounted again.
func (c *Controller) Unmount() {
	c.Close()
	if c.mounted && c.signal != nil {
		c.signal.Unsubscribe(c.subID)
	}
	c.subID = uuid.Nil
	c.mounted = false
	c.detached = true
}

// Open moves the popup to the open state.
func (c *Controller) Open() {
	c.SetOpen(true)
}

// Close moves the popup to the closed state.
func (c *Controller) Close() {
	c.SetOpen(false)
}

// Toggle flips the state.
func (c *Controller) Toggle() {
	c.SetOpen(!c.open)
}

// SetOpen applies an open-change intent. Same-state requests are ignored, as
// are open requests on a torn down controller.
func (c *Controller) SetOpen(open bool) {
	if c.open == open {
		return
	}
	if open && c.detached {
		return
	}
	c.open = open
	for _, fn := range c.watchers {
		fn(open)
	}
}
