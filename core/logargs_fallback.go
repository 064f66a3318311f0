//go:build !((linux || freebsd) && amd64)

package core

// Apple arm64 (and others) pass C varargs on the stack, where the
// bridge's fixed parameters cannot see them. Forward raw format strings
// instead of reading garbage registers.
const varargRegsValid = false
