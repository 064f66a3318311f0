package core

import (
	"testing"
	"unsafe"

	"github.com/team-phoenix/TestFront/api"
	"github.com/team-phoenix/TestFront/libretro"
)

func testController() *Controller {
	return NewController(Options{
		SystemDir: "/tmp/system",
		SaveDir:   "/tmp/saves",
	})
}

// TestEnvUnknownCommand verifies unknown codes are unhandled, not errors.
func TestEnvUnknownCommand(t *testing.T) {
	c := testController()
	if c.handleEnvironment(0xbeef, nil) {
		t.Error("unknown command reported handled")
	}
}

// TestEnvCanDupe verifies the dupe-frame capability flag reads true.
func TestEnvCanDupe(t *testing.T) {
	c := testController()
	var dupe bool
	if !c.handleEnvironment(libretro.EnvGetCanDupe, unsafe.Pointer(&dupe)) {
		t.Fatal("GET_CAN_DUPE unhandled")
	}
	if !dupe {
		t.Error("dupe = false, want true")
	}
}

// TestEnvSetPixelFormat verifies format negotiation, including rejection
// of unknown formats.
func TestEnvSetPixelFormat(t *testing.T) {
	c := testController()

	format := int32(libretro.PixelFormatRGB565)
	if !c.handleEnvironment(libretro.EnvSetPixelFormat, unsafe.Pointer(&format)) {
		t.Fatal("SET_PIXEL_FORMAT unhandled")
	}
	if c.pixelFormat != api.PixelFormatRGB565 {
		t.Errorf("pixelFormat = %v, want RGB565", c.pixelFormat)
	}

	bad := int32(99)
	if c.handleEnvironment(libretro.EnvSetPixelFormat, unsafe.Pointer(&bad)) {
		t.Error("unknown pixel format accepted")
	}
	if c.pixelFormat != api.PixelFormatRGB565 {
		t.Error("rejected format clobbered the negotiated one")
	}
}

// TestEnvDirectories verifies directory queries answer retained paths and
// report unhandled when unset.
func TestEnvDirectories(t *testing.T) {
	c := testController()

	var dir *byte
	if !c.handleEnvironment(libretro.EnvGetSystemDirectory, unsafe.Pointer(&dir)) {
		t.Fatal("GET_SYSTEM_DIRECTORY unhandled")
	}
	if got := libretro.GoString(dir); got != "/tmp/system" {
		t.Errorf("system dir = %q", got)
	}

	if !c.handleEnvironment(libretro.EnvGetSaveDirectory, unsafe.Pointer(&dir)) {
		t.Fatal("GET_SAVE_DIRECTORY unhandled")
	}
	if got := libretro.GoString(dir); got != "/tmp/saves" {
		t.Errorf("save dir = %q", got)
	}

	bare := NewController(Options{})
	if bare.handleEnvironment(libretro.EnvGetSystemDirectory, unsafe.Pointer(&dir)) {
		t.Error("unset system dir reported handled")
	}
}

// TestEnvVariables drives the full variable negotiation: declaration,
// read-back, update flag.
func TestEnvVariables(t *testing.T) {
	c := testController()

	key := libretro.CString("testcore_difficulty")
	val := libretro.CString("Difficulty; Easy|Normal|Hard")
	decls := []libretro.RawVariable{
		{Key: libretro.CStringPtr(key), Value: libretro.CStringPtr(val)},
		{},
	}
	if !c.handleEnvironment(libretro.EnvSetVariables, unsafe.Pointer(&decls[0])) {
		t.Fatal("SET_VARIABLES unhandled")
	}
	if c.vars.Len() != 1 {
		t.Fatalf("declared %d variables, want 1", c.vars.Len())
	}

	query := libretro.RawVariable{Key: libretro.CStringPtr(key)}
	if !c.handleEnvironment(libretro.EnvGetVariable, unsafe.Pointer(&query)) {
		t.Fatal("GET_VARIABLE unhandled for declared key")
	}
	if got := libretro.GoString(query.Value); got != "Easy" {
		t.Errorf("value = %q, want default \"Easy\"", got)
	}

	unknown := libretro.CString("nope")
	query = libretro.RawVariable{Key: libretro.CStringPtr(unknown)}
	if c.handleEnvironment(libretro.EnvGetVariable, unsafe.Pointer(&query)) {
		t.Error("GET_VARIABLE handled for undeclared key")
	}

	var updated bool
	c.handleEnvironment(libretro.EnvGetVariableUpdate, unsafe.Pointer(&updated))
	if updated {
		t.Error("update flag raised before any change")
	}

	c.vars.Set("testcore_difficulty", "Hard")
	c.handleEnvironment(libretro.EnvGetVariableUpdate, unsafe.Pointer(&updated))
	if !updated {
		t.Error("update flag not raised after set")
	}
	c.handleEnvironment(libretro.EnvGetVariableUpdate, unsafe.Pointer(&updated))
	if updated {
		t.Error("update flag not cleared by the read")
	}
}

// TestEnvVariableDefaultsSeeded verifies configured per-core defaults are
// applied when the core declares its variables.
func TestEnvVariableDefaultsSeeded(t *testing.T) {
	c := NewController(Options{
		VariableDefaults: map[string]string{"testcore_region": "PAL"},
	})

	key := libretro.CString("testcore_region")
	val := libretro.CString("Region; Auto|NTSC|PAL")
	decls := []libretro.RawVariable{
		{Key: libretro.CStringPtr(key), Value: libretro.CStringPtr(val)},
		{},
	}
	c.handleEnvironment(libretro.EnvSetVariables, unsafe.Pointer(&decls[0]))

	if got := c.vars.Get("testcore_region", "Auto"); got != "PAL" {
		t.Errorf("seeded value = %q, want \"PAL\"", got)
	}
}

// TestEnvInputDescriptors verifies the core's label mappings land as an
// ordered sequence.
func TestEnvInputDescriptors(t *testing.T) {
	c := testController()

	labelA := libretro.CString("Fire")
	labelB := libretro.CString("Jump")
	descs := []libretro.InputDescriptor{
		{Port: 0, Device: libretro.DeviceJoypad, ID: libretro.JoypadB, Description: libretro.CStringPtr(labelA)},
		{Port: 0, Device: libretro.DeviceJoypad, ID: libretro.JoypadA, Description: libretro.CStringPtr(labelB)},
		{},
	}
	if !c.handleEnvironment(libretro.EnvSetInputDescriptors, unsafe.Pointer(&descs[0])) {
		t.Fatal("SET_INPUT_DESCRIPTORS unhandled")
	}

	maps := c.ButtonMappings()
	if len(maps) != 2 {
		t.Fatalf("got %d mappings, want 2", len(maps))
	}
	if maps[0].Label != "Fire" || maps[0].ID != libretro.JoypadB {
		t.Errorf("maps[0] = %+v", maps[0])
	}
	if maps[1].Label != "Jump" || maps[1].ID != libretro.JoypadA {
		t.Errorf("maps[1] = %+v", maps[1])
	}
}

// TestEnvShutdownDeferred verifies SHUTDOWN is honored after the frame,
// not inside the dispatch.
func TestEnvShutdownDeferred(t *testing.T) {
	c := testController()
	if !c.handleEnvironment(libretro.EnvShutdown, nil) {
		t.Fatal("SHUTDOWN unhandled")
	}
	if !c.shutdownRequested {
		t.Error("shutdown not recorded")
	}
	if c.state != api.StateUninitialized {
		t.Error("dispatch tore the state down mid-call")
	}
}

// TestEnvHWRender verifies the opaque payload reaches the handler and is
// refused without one.
func TestEnvHWRender(t *testing.T) {
	var hw libretro.HWRenderCallback
	hw.ContextType = 1

	c := testController()
	if c.handleEnvironment(libretro.EnvSetHWRender, unsafe.Pointer(&hw)) {
		t.Error("SET_HW_RENDER handled with no handler")
	}

	var seen uint32
	c.hwHandler = hwHandlerFunc(func(req api.HWRenderRequest) bool {
		seen = req.ContextType
		return true
	})
	if !c.handleEnvironment(libretro.EnvSetHWRender, unsafe.Pointer(&hw)) {
		t.Fatal("SET_HW_RENDER unhandled with handler")
	}
	if seen != 1 {
		t.Errorf("context type = %d, want 1", seen)
	}
}

type hwHandlerFunc func(api.HWRenderRequest) bool

func (f hwHandlerFunc) SetHWRender(req api.HWRenderRequest) bool { return f(req) }

// TestEnvGeometry verifies SET_GEOMETRY updates base dimensions without
// touching the pool-sizing maxima.
func TestEnvGeometry(t *testing.T) {
	c := testController()
	c.av = api.AVDescriptor{BaseWidth: 256, BaseHeight: 224, MaxWidth: 512, MaxHeight: 480}

	g := libretro.GameGeometry{BaseWidth: 320, BaseHeight: 240, AspectRatio: 4.0 / 3.0}
	if !c.handleEnvironment(libretro.EnvSetGeometry, unsafe.Pointer(&g)) {
		t.Fatal("SET_GEOMETRY unhandled")
	}
	if c.av.BaseWidth != 320 || c.av.BaseHeight != 240 {
		t.Errorf("base = %dx%d", c.av.BaseWidth, c.av.BaseHeight)
	}
	if c.av.MaxWidth != 512 || c.av.MaxHeight != 480 {
		t.Error("maxima changed by SET_GEOMETRY")
	}
}

// TestEnvCallbackRegistration verifies the optional core-provided
// callback pointers are captured.
func TestEnvCallbackRegistration(t *testing.T) {
	c := testController()

	kb := libretro.KeyboardCallback{Callback: 0x1234}
	if !c.handleEnvironment(libretro.EnvSetKeyboardCallback, unsafe.Pointer(&kb)) {
		t.Fatal("SET_KEYBOARD_CALLBACK unhandled")
	}
	if c.symbols.KeyboardEvent != 0x1234 {
		t.Error("keyboard callback not captured")
	}

	ft := libretro.FrameTimeCallback{Callback: 0x2345, Reference: 16667}
	c.handleEnvironment(libretro.EnvSetFrameTimeCallback, unsafe.Pointer(&ft))
	if c.symbols.FrameTime != 0x2345 || c.frameTimeRef != 16667 {
		t.Error("frame time callback not captured")
	}

	ac := libretro.AudioCallback{Callback: 0x3456, SetState: 0x4567}
	c.handleEnvironment(libretro.EnvSetAudioCallback, unsafe.Pointer(&ac))
	if c.symbols.AudioNotify != 0x3456 || c.symbols.AudioSetState != 0x4567 {
		t.Error("audio callback not captured")
	}
}

// TestEnvLogInterface verifies the host hands out a log trampoline.
func TestEnvLogInterface(t *testing.T) {
	c := testController()

	var lc libretro.LogCallback
	if !c.handleEnvironment(libretro.EnvGetLogInterface, unsafe.Pointer(&lc)) {
		t.Fatal("GET_LOG_INTERFACE unhandled")
	}
	if lc.Log == 0 {
		t.Error("log callback pointer is zero")
	}
}
