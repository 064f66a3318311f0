//go:build !linux && !darwin && !freebsd

package core

import "errors"

var errUnsupportedPlatform = errors.New("core loading is not supported on this platform")

func dlopen(path string) (uintptr, error) {
	return 0, errUnsupportedPlatform
}

func dlsym(handle uintptr, name string) (uintptr, error) {
	return 0, errUnsupportedPlatform
}

func dlclose(handle uintptr) {
}
