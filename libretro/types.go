package libretro

import "unsafe"

// The structs below mirror the C struct layouts from libretro.h for 64-bit
// targets. Field order and types must not change: the core reads and writes
// these through raw pointers.

// SystemInfo mirrors struct retro_system_info. The core fills it in
// retro_get_system_info; all strings are core-owned.
type SystemInfo struct {
	LibraryName     *byte
	LibraryVersion  *byte
	ValidExtensions *byte
	NeedFullpath    bool
	BlockExtract    bool
}

// GameGeometry mirrors struct retro_game_geometry.
type GameGeometry struct {
	BaseWidth   uint32
	BaseHeight  uint32
	MaxWidth    uint32
	MaxHeight   uint32
	AspectRatio float32
}

// SystemTiming mirrors struct retro_system_timing.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo mirrors struct retro_system_av_info. Go inserts the same
// four bytes of padding before Timing that C does.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// GameInfo mirrors struct retro_game_info, the argument to retro_load_game.
type GameInfo struct {
	Path *byte
	Data unsafe.Pointer
	Size uintptr
	Meta *byte
}

// RawVariable mirrors struct retro_variable. For EnvSetVariables the core
// passes an array terminated by a {nil, nil} entry; for EnvGetVariable the
// host writes Value and the string must stay valid until the next call.
type RawVariable struct {
	Key   *byte
	Value *byte
}

// Message mirrors struct retro_message (EnvSetMessage).
type Message struct {
	Msg    *byte
	Frames uint32
}

// InputDescriptor mirrors struct retro_input_descriptor
// (EnvSetInputDescriptors, nil-Description terminated array).
type InputDescriptor struct {
	Port        uint32
	Device      uint32
	Index       uint32
	ID          uint32
	Description *byte
}

// LogCallback mirrors struct retro_log_callback. The host writes the
// function pointer in response to EnvGetLogInterface.
type LogCallback struct {
	Log uintptr
}

// HWRenderCallback mirrors struct retro_hw_render_callback. The host treats
// it as an opaque payload for the consumer apart from ContextType.
type HWRenderCallback struct {
	ContextType           uint32
	ContextReset          uintptr
	GetCurrentFramebuffer uintptr
	GetProcAddress        uintptr
	Depth                 bool
	Stencil               bool
	BottomLeftOrigin      bool
	VersionMajor          uint32
	VersionMinor          uint32
	CacheContext          bool
	ContextDestroy        uintptr
	DebugContext          bool
}

// FrameTimeCallback mirrors struct retro_frame_time_callback.
type FrameTimeCallback struct {
	Callback  uintptr
	Reference int64
}

// AudioCallback mirrors struct retro_audio_callback.
type AudioCallback struct {
	Callback uintptr
	SetState uintptr
}

// KeyboardCallback mirrors struct retro_keyboard_callback.
type KeyboardCallback struct {
	Callback uintptr
}

// GoString copies a NUL-terminated C string into a Go string.
// Returns "" for a nil pointer.
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	var n int
	for ptr := unsafe.Pointer(p); *(*byte)(ptr) != 0; ptr = unsafe.Add(ptr, 1) {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// GoStringAddr is GoString for a raw address, as read out of core-owned
// struct memory.
func GoStringAddr(addr uintptr) string {
	if addr == 0 {
		return ""
	}
	return GoString((*byte)(unsafe.Pointer(addr)))
}

// CString returns s as a NUL-terminated byte buffer. The caller must keep
// the buffer reachable for as long as the core may read the pointer.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// CStringPtr returns a pointer to the first byte of a CString buffer,
// or nil for an empty buffer.
func CStringPtr(b []byte) *byte {
	if len(b) == 0 {
		return nil
	}
	return &b[0]
}
