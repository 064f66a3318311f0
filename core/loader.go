package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/team-phoenix/TestFront/api"
)

// platformLibraryExt returns the shared library extension for the OS the
// host is running on.
func platformLibraryExt() string {
	switch runtime.GOOS {
	case "windows":
		return ".dll"
	case "darwin":
		return ".dylib"
	default:
		return ".so"
	}
}

// loadLibrary opens the core binary and returns its handle, classifying
// every failure mode into a CoreLoadError. On return with an error, no
// handle is held.
func loadLibrary(path string) (uintptr, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != platformLibraryExt() {
		return 0, &api.CoreLoadError{
			Code: api.ErrCoreNotLibrary,
			Path: path,
			Err:  fmt.Errorf("extension %q is not %q", ext, platformLibraryExt()),
		}
	}

	// Stat first: dlopen collapses every filesystem failure into one
	// opaque message, so classify before handing the path to it.
	if _, err := os.Stat(path); err != nil {
		return 0, &api.CoreLoadError{Code: classifyIOError(err, true), Path: path, Err: err}
	}

	handle, err := dlopen(path)
	if err != nil {
		return 0, &api.CoreLoadError{Code: api.ErrCoreLoad, Path: path, Err: err}
	}
	return handle, nil
}

// classifyIOError maps a filesystem error to the core or game error code
// taxonomy.
func classifyIOError(err error, core bool) api.ErrorCode {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if core {
			return api.ErrCoreNotFound
		}
		return api.ErrGameNotFound
	case errors.Is(err, fs.ErrPermission):
		if core {
			return api.ErrCoreAccessDenied
		}
		return api.ErrGameAccessDenied
	default:
		if core {
			return api.ErrCoreUnknown
		}
		return api.ErrGameUnknown
	}
}
