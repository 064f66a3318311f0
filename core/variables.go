package core

import (
	"strings"

	"github.com/team-phoenix/TestFront/libretro"
)

// Variable is one core-declared configuration variable. The raw descriptor
// format is "<description>; choice1|choice2|...": text before the first
// "; " is the description, the rest is the pipe-separated choice list.
type Variable struct {
	Key         string
	Description string
	Choices     []string

	value string
	// NUL-terminated current value handed to the core on EnvGetVariable.
	// Kept alive here so the pointer stays valid between calls.
	valueBuf []byte
}

// Value returns the current value, or def when unset. An empty stored
// value means "use default".
func (v *Variable) Value(def string) string {
	if v.value == "" {
		return def
	}
	return v.value
}

// Variables stores the core-declared variable set for one loaded game.
type Variables struct {
	vars  map[string]*Variable
	order []string

	// Set when any value changes; cleared when the core asks
	// EnvGetVariableUpdate.
	updated bool
}

func newVariables() *Variables {
	return &Variables{vars: make(map[string]*Variable)}
}

// Declare parses a raw descriptor and registers the variable under key.
// Re-declaring an existing key replaces its description and choices but
// keeps the current value.
func (vs *Variables) Declare(key, raw string) {
	if key == "" {
		return
	}

	v, ok := vs.vars[key]
	if !ok {
		v = &Variable{Key: key}
		vs.vars[key] = v
		vs.order = append(vs.order, key)
	}

	desc, choicesRaw, found := strings.Cut(raw, "; ")
	if !found {
		// Unknown descriptor shape; keep the whole string as description.
		v.Description = raw
		v.Choices = nil
		return
	}
	v.Description = desc
	v.Choices = strings.Split(choicesRaw, "|")
}

// Get returns the current value of a declared variable, or def when the
// variable is unset or undeclared.
func (vs *Variables) Get(key, def string) string {
	v, ok := vs.vars[key]
	if !ok {
		return def
	}
	return v.Value(def)
}

// Set updates a declared variable and raises the update flag. Setting an
// undeclared key is a no-op; the return value reports whether the key was
// declared.
func (vs *Variables) Set(key, value string) bool {
	v, ok := vs.vars[key]
	if !ok {
		return false
	}
	if v.value != value {
		v.value = value
		v.valueBuf = nil
		vs.updated = true
	}
	return true
}

// Updated reports whether any value changed since the core last checked.
func (vs *Variables) Updated() bool {
	return vs.updated
}

// consumeUpdate returns the update flag and clears it. Used by the
// EnvGetVariableUpdate response.
func (vs *Variables) consumeUpdate() bool {
	u := vs.updated
	vs.updated = false
	return u
}

// List returns the declared variables in declaration order.
func (vs *Variables) List() []Variable {
	out := make([]Variable, 0, len(vs.order))
	for _, key := range vs.order {
		out = append(out, *vs.vars[key])
	}
	return out
}

// Len returns the number of declared variables.
func (vs *Variables) Len() int {
	return len(vs.order)
}

// valuePtr returns a stable NUL-terminated pointer to the current value of
// key for the core to read, or nil when the key is undeclared. An unset
// variable reads as its first choice (the core's declared default).
func (vs *Variables) valuePtr(key string) *byte {
	v, ok := vs.vars[key]
	if !ok {
		return nil
	}

	val := v.value
	if val == "" && len(v.Choices) > 0 {
		val = v.Choices[0]
	}
	if v.valueBuf == nil || libretro.GoString(libretro.CStringPtr(v.valueBuf)) != val {
		v.valueBuf = libretro.CString(val)
	}
	return libretro.CStringPtr(v.valueBuf)
}

// clear drops every declared variable. Called on game unload.
func (vs *Variables) clear() {
	vs.vars = make(map[string]*Variable)
	vs.order = vs.order[:0]
	vs.updated = false
}
