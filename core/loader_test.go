package core

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/team-phoenix/TestFront/api"
)

func TestClassifyIOError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		core bool
		want api.ErrorCode
	}{
		{"core not found", fs.ErrNotExist, true, api.ErrCoreNotFound},
		{"game not found", fs.ErrNotExist, false, api.ErrGameNotFound},
		{"core access denied", fs.ErrPermission, true, api.ErrCoreAccessDenied},
		{"game access denied", fs.ErrPermission, false, api.ErrGameAccessDenied},
		{"core unknown", errors.New("disk on fire"), true, api.ErrCoreUnknown},
		{"game unknown", errors.New("disk on fire"), false, api.ErrGameUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyIOError(tc.err, tc.core); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLoadLibraryWrongExtension(t *testing.T) {
	_, err := loadLibrary("/anywhere/core.txt")

	var coreErr *api.CoreLoadError
	if !errors.As(err, &coreErr) || coreErr.Code != api.ErrCoreNotLibrary {
		t.Fatalf("err = %v, want CoreLoadError(ErrCoreNotLibrary)", err)
	}
}

func TestLoadLibraryMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing"+platformLibraryExt())
	_, err := loadLibrary(path)

	var coreErr *api.CoreLoadError
	if !errors.As(err, &coreErr) || coreErr.Code != api.ErrCoreNotFound {
		t.Fatalf("err = %v, want CoreLoadError(ErrCoreNotFound)", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("underlying os error not wrapped")
	}
}

// TestLoadCoreFailureIsTerminal verifies a failed load lands the
// controller in Error and that the instance cannot be reused.
func TestLoadCoreFailureIsTerminal(t *testing.T) {
	var codes []api.ErrorCode
	c := NewController(Options{
		Listener: api.StateListenerFunc(func(ch api.StateChange) {
			if code, ok := ch.Err(); ok {
				codes = append(codes, code)
			}
		}),
	})

	path := filepath.Join(t.TempDir(), "missing"+platformLibraryExt())
	if err := c.LoadCore(path); err == nil {
		t.Fatal("LoadCore succeeded on a missing file")
	}

	if c.State() != api.StateError {
		t.Fatalf("state = %v, want error", c.State())
	}
	if len(codes) != 1 || codes[0] != api.ErrCoreNotFound {
		t.Errorf("error codes = %v, want [ErrCoreNotFound]", codes)
	}

	// The failed instance released the active slot for a replacement.
	if activeController() != nil {
		t.Error("failed load left the active slot claimed")
	}

	// Terminal means terminal: no second attempt on this instance.
	if err := c.LoadCore(path); err == nil {
		t.Error("LoadCore accepted a retry in the error state")
	}
}
