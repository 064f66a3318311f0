// Package core hosts a libretro core binary: it loads the shared library,
// resolves its entry points, bridges the frontend callbacks into Go, and
// drives emulation one frame at a time through a small state machine.
//
// The model is single-threaded and cooperative. The consumer calls
// Controller methods from one goroutine; during DoFrame the core re-enters
// the bridge callbacks synchronously on the same stack. Pool reads by the
// consumer must happen strictly between DoFrame calls.
package core

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/team-phoenix/TestFront/libretro"
)

// ErrSymbolMissing is returned when a required entry point cannot be
// resolved from the core binary.
var ErrSymbolMissing = errors.New("required symbol missing")

// Symbols is the typed function table resolved out of a core binary.
// Required entries are always non-nil after a successful resolve; optional
// entries are nil when the core does not export them.
type Symbols struct {
	// Required core entry points
	APIVersion              func() uint32
	Init                    func()
	Deinit                  func()
	GetSystemInfo           func(info *libretro.SystemInfo)
	GetSystemAVInfo         func(info *libretro.SystemAVInfo)
	LoadGame                func(game *libretro.GameInfo) bool
	UnloadGame              func()
	Run                     func()
	Reset                   func()
	SetEnvironment          func(cb uintptr)
	SetVideoRefresh         func(cb uintptr)
	SetAudioSample          func(cb uintptr)
	SetAudioSampleBatch     func(cb uintptr)
	SetInputPoll            func(cb uintptr)
	SetInputState           func(cb uintptr)
	SetControllerPortDevice func(port, device uint32)

	// Optional core entry points
	SerializeSize   func() uintptr
	Serialize       func(data unsafe.Pointer, size uintptr) bool
	Unserialize     func(data unsafe.Pointer, size uintptr) bool
	CheatReset      func()
	CheatSet        func(index uint32, enabled bool, code *byte)
	GetMemoryData   func(id uint32) unsafe.Pointer
	GetMemorySize   func(id uint32) uintptr
	GetRegion       func() uint32
	LoadGameSpecial func(gameType uint32, info *libretro.GameInfo, numInfo uintptr) bool

	// Core-provided callback pointers registered through environment
	// commands, stored raw and invoked via the bridge's caller stubs.
	AudioNotify   uintptr
	AudioSetState uintptr
	FrameTime     uintptr
	KeyboardEvent uintptr
}

// clear resets every entry to absent. Called before each resolve pass so a
// failed load never leaves stale pointers from a prior core, and on unload.
func (s *Symbols) clear() {
	*s = Symbols{}
}

// resolve binds every entry point out of an open library handle. Missing a
// required symbol fails the whole pass; missing an optional one leaves the
// field nil and that feature disabled.
func (s *Symbols) resolve(handle uintptr) error {
	s.clear()

	entries := []struct {
		name     string
		required bool
		fptr     any
	}{
		{"retro_api_version", true, &s.APIVersion},
		{"retro_init", true, &s.Init},
		{"retro_deinit", true, &s.Deinit},
		{"retro_get_system_info", true, &s.GetSystemInfo},
		{"retro_get_system_av_info", true, &s.GetSystemAVInfo},
		{"retro_load_game", true, &s.LoadGame},
		{"retro_unload_game", true, &s.UnloadGame},
		{"retro_run", true, &s.Run},
		{"retro_reset", true, &s.Reset},
		{"retro_set_environment", true, &s.SetEnvironment},
		{"retro_set_video_refresh", true, &s.SetVideoRefresh},
		{"retro_set_audio_sample", true, &s.SetAudioSample},
		{"retro_set_audio_sample_batch", true, &s.SetAudioSampleBatch},
		{"retro_set_input_poll", true, &s.SetInputPoll},
		{"retro_set_input_state", true, &s.SetInputState},
		{"retro_set_controller_port_device", true, &s.SetControllerPortDevice},

		{"retro_serialize_size", false, &s.SerializeSize},
		{"retro_serialize", false, &s.Serialize},
		{"retro_unserialize", false, &s.Unserialize},
		{"retro_cheat_reset", false, &s.CheatReset},
		{"retro_cheat_set", false, &s.CheatSet},
		{"retro_get_memory_data", false, &s.GetMemoryData},
		{"retro_get_memory_size", false, &s.GetMemorySize},
		{"retro_get_region", false, &s.GetRegion},
		{"retro_load_game_special", false, &s.LoadGameSpecial},
	}

	for _, e := range entries {
		addr, err := dlsym(handle, e.name)
		if err != nil || addr == 0 {
			if e.required {
				s.clear()
				return fmt.Errorf("%w: %s", ErrSymbolMissing, e.name)
			}
			continue
		}
		purego.RegisterFunc(e.fptr, addr)
	}

	return nil
}

// CanSerialize reports whether the core exports the full save-state entry
// point set.
func (s *Symbols) CanSerialize() bool {
	return s.SerializeSize != nil && s.Serialize != nil && s.Unserialize != nil
}

// HasMemoryAccess reports whether the core exports the memory region
// accessors needed for SRAM handling.
func (s *Symbols) HasMemoryAccess() bool {
	return s.GetMemoryData != nil && s.GetMemorySize != nil
}

// HasCheats reports whether cheat entry points are available.
func (s *Symbols) HasCheats() bool {
	return s.CheatReset != nil && s.CheatSet != nil
}
