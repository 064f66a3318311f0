// Package api defines the types and interfaces a consumer uses to talk to
// the core host: lifecycle states and their payloads, audio/video frame
// views, and the collaborator interfaces (frame sink, input provider, log
// sink, hardware-render handler) the host calls out through.
package api

import "fmt"

// State identifies where a Controller is in its lifecycle.
type State int

const (
	// StateUninitialized is the starting state. A core may be bound but no
	// game is loaded yet.
	StateUninitialized State = iota

	// StateReady means a game is loaded and frames can be run.
	StateReady

	// StateFinished is terminal for a game instance: the game was unloaded
	// or the core requested shutdown.
	StateFinished

	// StateError is terminal for a load attempt. Construct a fresh
	// Controller to retry.
	StateError
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateFinished:
		return "finished"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// StateChange is a state transition notification. The payload is tagged by
// the state: only ReadyChange carries an AVDescriptor and only ErrorChange
// carries an ErrorCode, enforced by construction.
type StateChange struct {
	state State
	av    AVDescriptor
	code  ErrorCode
}

// UninitializedChange returns the payload-free initial-state notification.
func UninitializedChange() StateChange {
	return StateChange{state: StateUninitialized}
}

// ReadyChange returns a Ready notification carrying the audio/video
// descriptor of the loaded game.
func ReadyChange(av AVDescriptor) StateChange {
	return StateChange{state: StateReady, av: av}
}

// FinishedChange returns the payload-free terminal notification.
func FinishedChange() StateChange {
	return StateChange{state: StateFinished}
}

// ErrorChange returns an Error notification carrying the failure code.
func ErrorChange(code ErrorCode) StateChange {
	return StateChange{state: StateError, code: code}
}

// State returns the state this change moved to.
func (c StateChange) State() State {
	return c.state
}

// AV returns the AVDescriptor payload. ok is false unless the change is a
// Ready transition.
func (c StateChange) AV() (av AVDescriptor, ok bool) {
	return c.av, c.state == StateReady
}

// Err returns the ErrorCode payload. ok is false unless the change is an
// Error transition.
func (c StateChange) Err() (code ErrorCode, ok bool) {
	return c.code, c.state == StateError
}

// StateListener receives state-change notifications from a Controller.
type StateListener interface {
	StateChanged(change StateChange)
}

// StateListenerFunc adapts a function to the StateListener interface.
type StateListenerFunc func(change StateChange)

// StateChanged calls f.
func (f StateListenerFunc) StateChanged(change StateChange) { f(change) }
