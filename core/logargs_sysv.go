//go:build (linux || freebsd) && amd64

package core

// On SysV amd64 the first integer-class varargs travel in the same
// registers as fixed arguments, so the bridge's extra parameters line up
// with the core's varargs.
const varargRegsValid = true
