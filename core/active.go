package core

import (
	"errors"
	"sync"
)

// The libretro callbacks carry no context parameter, so exactly one live
// Controller can be reachable from them. The registry below is that single
// swappable slot; every bridge function resolves the instance through it.

// ErrInstanceActive is returned when binding a Controller while another
// one already holds the active slot.
var ErrInstanceActive = errors.New("another controller instance is already active")

var (
	activeMu sync.Mutex
	active   *Controller
)

// bindActive claims the process-wide active slot for c. Fails if any other
// controller holds it. The single-instance invariant is asserted here, at
// bind time, instead of being left undefined.
func bindActive(c *Controller) error {
	activeMu.Lock()
	defer activeMu.Unlock()

	if active != nil && active != c {
		return ErrInstanceActive
	}
	active = c
	return nil
}

// releaseActive frees the slot if c holds it.
func releaseActive(c *Controller) {
	activeMu.Lock()
	defer activeMu.Unlock()

	if active == c {
		active = nil
	}
}

// activeController returns the bound instance, or nil. Bridge functions
// must treat nil as "do nothing and return zero": a callback arriving with
// no active instance is a contract violation by the core, and the host
// must not crash on it.
func activeController() *Controller {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}
