// Package libretro mirrors the parts of the libretro C ABI the host needs:
// entry point names, environment command codes, pixel formats, device and
// memory region IDs, and Go structs laid out to match the C structs the
// core reads and writes through raw pointers.
//
// Only the host side of the ABI is covered. Nothing here calls into a core;
// packages that do (see core) use these definitions with unsafe pointers.
package libretro

// APIVersion is the libretro API version this host implements.
// retro_api_version() must return this value.
const APIVersion = 1

// Hardware region returned by retro_get_region.
const (
	RegionNTSC = 0
	RegionPAL  = 1
)

// Pixel formats negotiated via EnvSetPixelFormat.
const (
	PixelFormat0RGB1555 = 0
	PixelFormatXRGB8888 = 1
	PixelFormatRGB565   = 2
)

// BytesPerPixel returns the size of one pixel for a negotiated format,
// or 0 for an unknown format.
func BytesPerPixel(format int) int {
	switch format {
	case PixelFormat0RGB1555, PixelFormatRGB565:
		return 2
	case PixelFormatXRGB8888:
		return 4
	}
	return 0
}

// Input device classes for retro_input_state.
const (
	DeviceNone     = 0
	DeviceJoypad   = 1
	DeviceMouse    = 2
	DeviceKeyboard = 3
	DeviceLightgun = 4
	DeviceAnalog   = 5
	DevicePointer  = 6
)

// Joypad button IDs for retro_input_state with DeviceJoypad.
const (
	JoypadB = iota
	JoypadY
	JoypadSelect
	JoypadStart
	JoypadUp
	JoypadDown
	JoypadLeft
	JoypadRight
	JoypadA
	JoypadX
	JoypadL
	JoypadR
	JoypadL2
	JoypadR2
	JoypadL3
	JoypadR3
)

// Memory region IDs for retro_get_memory_data/size.
const (
	MemorySaveRAM   = 0
	MemoryRTC       = 1
	MemorySystemRAM = 2
	MemoryVideoRAM  = 3
)

// Log levels passed to the retro_log_printf_t callback.
const (
	LogDebug = iota
	LogInfo
	LogWarn
	LogError
)

// Environment command codes. The experimental flag (bit 16) is part of the
// code for commands that carry it; the host compares full values.
const (
	EnvSetRotation          = 1
	EnvGetOverscan          = 2
	EnvGetCanDupe           = 3
	EnvSetMessage           = 6
	EnvShutdown             = 7
	EnvSetPerformanceLevel  = 8
	EnvGetSystemDirectory   = 9
	EnvSetPixelFormat       = 10
	EnvSetInputDescriptors  = 11
	EnvSetKeyboardCallback  = 12
	EnvSetHWRender          = 14
	EnvGetVariable          = 15
	EnvSetVariables         = 16
	EnvGetVariableUpdate    = 17
	EnvSetSupportNoGame     = 18
	EnvGetLibretroPath      = 19
	EnvSetFrameTimeCallback = 21
	EnvSetAudioCallback     = 22
	EnvGetLogInterface      = 27
	EnvGetSaveDirectory     = 31
	EnvSetSystemAVInfo      = 32
	EnvSetGeometry          = 37
)

// Required entry points. Every one of these must resolve or the core is
// unusable and the load fails.
var RequiredSymbols = []string{
	"retro_api_version",
	"retro_init",
	"retro_deinit",
	"retro_get_system_info",
	"retro_get_system_av_info",
	"retro_load_game",
	"retro_unload_game",
	"retro_run",
	"retro_reset",
	"retro_set_environment",
	"retro_set_video_refresh",
	"retro_set_audio_sample",
	"retro_set_audio_sample_batch",
	"retro_set_input_poll",
	"retro_set_input_state",
	"retro_set_controller_port_device",
}

// Optional entry points. Absence disables the matching feature path.
var OptionalSymbols = []string{
	"retro_serialize_size",
	"retro_serialize",
	"retro_unserialize",
	"retro_cheat_reset",
	"retro_cheat_set",
	"retro_get_memory_data",
	"retro_get_memory_size",
	"retro_get_region",
	"retro_load_game_special",
}
