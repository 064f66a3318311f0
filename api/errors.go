package api

import "fmt"

// ErrorCode classifies a failure reported through the Error state payload.
type ErrorCode int

const (
	// ErrNone means no error.
	ErrNone ErrorCode = iota

	// ErrCoreLoad: the file could not be loaded as a shared library.
	// Wrong architecture? Wrong OS? Not even a shared library? Corrupt?
	ErrCoreLoad

	// ErrCoreNotLibrary: the core does not have the right extension for
	// the platform the host is running on.
	ErrCoreNotLibrary

	// ErrCoreNotFound: the core file was not found.
	ErrCoreNotFound

	// ErrCoreAccessDenied: no permission to open the core file.
	ErrCoreAccessDenied

	// ErrCoreUnknown: some other filesystem error preventing the core from
	// being loaded. IO error, volume dismounted, network share gone.
	ErrCoreUnknown

	// ErrGameNotFound: the game file was not found.
	ErrGameNotFound

	// ErrGameAccessDenied: no permission to open the game file.
	ErrGameAccessDenied

	// ErrGameUnknown: some other filesystem error preventing the game from
	// being loaded.
	ErrGameUnknown

	// ErrRequiredSymbolMissing: the core does not export a required entry
	// point.
	ErrRequiredSymbolMissing

	// ErrSerializeFailed: retro_serialize or retro_unserialize reported
	// failure, or the core does not support save states.
	ErrSerializeFailed
)

// String returns the code name for logs.
func (c ErrorCode) String() string {
	switch c {
	case ErrNone:
		return "no error"
	case ErrCoreLoad:
		return "core load failed"
	case ErrCoreNotLibrary:
		return "core is not a shared library"
	case ErrCoreNotFound:
		return "core not found"
	case ErrCoreAccessDenied:
		return "core access denied"
	case ErrCoreUnknown:
		return "core load: unknown I/O error"
	case ErrGameNotFound:
		return "game not found"
	case ErrGameAccessDenied:
		return "game access denied"
	case ErrGameUnknown:
		return "game load: unknown I/O error"
	case ErrRequiredSymbolMissing:
		return "required symbol missing"
	case ErrSerializeFailed:
		return "serialize failed"
	}
	return fmt.Sprintf("error(%d)", int(c))
}

// CoreLoadError reports a failure to load a core binary.
type CoreLoadError struct {
	Code ErrorCode
	Path string
	Err  error
}

func (e *CoreLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load core %s: %s: %v", e.Path, e.Code, e.Err)
	}
	return fmt.Sprintf("load core %s: %s", e.Path, e.Code)
}

func (e *CoreLoadError) Unwrap() error { return e.Err }

// GameLoadError reports a failure to load game content.
type GameLoadError struct {
	Code ErrorCode
	Path string
	Err  error
}

func (e *GameLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load game %s: %s: %v", e.Path, e.Code, e.Err)
	}
	return fmt.Sprintf("load game %s: %s", e.Path, e.Code)
}

func (e *GameLoadError) Unwrap() error { return e.Err }

// RuntimeError reports a failure in an operation on an already-loaded core.
type RuntimeError struct {
	Code ErrorCode
	Op   string
	Err  error
}

func (e *RuntimeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *RuntimeError) Unwrap() error { return e.Err }
