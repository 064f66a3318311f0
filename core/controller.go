package core

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/team-phoenix/TestFront/api"
	"github.com/team-phoenix/TestFront/gameloader"
	"github.com/team-phoenix/TestFront/libretro"
)

// ErrNoCoreLoaded is returned when an operation requires a bound core.
// Loading a game before a core is a caller contract violation and is not
// attempted.
var ErrNoCoreLoaded = errors.New("no core loaded")

// ErrCoreAlreadyLoaded is returned when LoadCore is called twice on one
// Controller.
var ErrCoreAlreadyLoaded = errors.New("core already loaded")

// ErrNotReady is returned for operations that need a loaded game.
var ErrNotReady = errors.New("no game loaded")

// ErrNotSupported is returned when the core lacks the optional entry
// points an operation needs.
var ErrNotSupported = errors.New("not supported by this core")

// CoreInfo is the host-side copy of the core's self-description.
type CoreInfo struct {
	Name         string
	Version      string
	Extensions   []string // lowercase, dot-prefixed
	NeedFullpath bool
	BlockExtract bool
}

// Options configures a Controller's collaborators. Every field may be
// zero; a missing collaborator disables that path (no video/audio
// emission, inputs read as released, logs dropped, hardware render
// refused).
type Options struct {
	Listener api.StateListener
	Sink     api.FrameSink
	Input    api.InputProvider
	Log      api.LogSink
	HWRender api.HWRenderHandler

	// Directories answered to EnvGetSystemDirectory / EnvGetSaveDirectory.
	// Empty means "unhandled".
	SystemDir string
	SaveDir   string

	// VariableDefaults seeds core variables by key when the core declares
	// them (per-core settings from host config).
	VariableDefaults map[string]string
}

// Controller owns one core binding and drives it one frame at a time.
//
// Lifecycle: Uninitialized --LoadCore--> Uninitialized (core bound)
// --LoadGame--> Ready --DoFrame--> Ready ... --UnloadGame--> Finished.
// Any load failure lands in Error, which is terminal for this instance;
// construct a fresh Controller to retry.
//
// All methods must be called from a single goroutine. During DoFrame the
// core re-enters the bridge callbacks synchronously on the same stack.
type Controller struct {
	listener  api.StateListener
	sink      api.FrameSink
	input     api.InputProvider
	logSink   api.LogSink
	hwHandler api.HWRenderHandler

	systemDirBuf []byte
	saveDirBuf   []byte
	corePathBuf  []byte
	varDefaults  map[string]string

	symbols   Symbols
	handle    uintptr
	coreBound bool
	corePath  string

	state api.State

	coreInfo    CoreInfo
	av          api.AVDescriptor
	pixelFormat api.PixelFormat

	vars *Variables
	pool *avPool

	buttonMaps []ButtonMapping

	gameLoaded  bool
	gamePath    string
	gamePathBuf []byte
	gameData    []byte

	sram []byte

	performanceLevel  uint32
	supportsNoGame    bool
	shutdownRequested bool
	frameTimeRef      int64
	inFrame           bool
}

// NewController creates a Controller in the Uninitialized state. Nothing
// is bound until LoadCore.
func NewController(opts Options) *Controller {
	c := &Controller{
		listener:    opts.Listener,
		sink:        opts.Sink,
		input:       opts.Input,
		logSink:     opts.Log,
		hwHandler:   opts.HWRender,
		varDefaults: opts.VariableDefaults,
		state:       api.StateUninitialized,
		// Pixel format before negotiation, per the ABI default.
		pixelFormat: api.PixelFormat0RGB1555,
		vars:        newVariables(),
		pool:        newAVPool(),
	}
	if opts.SystemDir != "" {
		c.systemDirBuf = libretro.CString(opts.SystemDir)
	}
	if opts.SaveDir != "" {
		c.saveDirBuf = libretro.CString(opts.SaveDir)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() api.State { return c.state }

// AV returns the descriptor of the loaded game. Only meaningful in Ready.
func (c *Controller) AV() api.AVDescriptor { return c.av }

// Core returns the bound core's self-description.
func (c *Controller) Core() CoreInfo { return c.coreInfo }

// Variables returns the core-declared variable registry.
func (c *Controller) Variables() *Variables { return c.vars }

// ButtonMappings returns the core-declared input label mappings, in
// declaration order.
func (c *Controller) ButtonMappings() []ButtonMapping { return c.buttonMaps }

// SupportsNoGame reports whether the core can start without content.
func (c *Controller) SupportsNoGame() bool { return c.supportsNoGame }

// LoadCore binds the core binary at path: claims the process-wide active
// slot, opens the library, resolves every entry point, registers the
// bridge callbacks, and runs retro_init. On success the state stays
// Uninitialized with the core bound; any failure transitions to Error.
func (c *Controller) LoadCore(path string) error {
	if c.coreBound {
		return ErrCoreAlreadyLoaded
	}
	if c.state != api.StateUninitialized {
		return fmt.Errorf("cannot load core in state %s", c.state)
	}

	// Bind before touching the core: retro_set_environment re-enters the
	// bridge during the call.
	if err := bindActive(c); err != nil {
		return err
	}

	handle, err := loadLibrary(path)
	if err != nil {
		releaseActive(c)
		var coreErr *api.CoreLoadError
		if errors.As(err, &coreErr) {
			c.fail(coreErr.Code)
		} else {
			c.fail(api.ErrCoreLoad)
		}
		return err
	}

	if err := c.symbols.resolve(handle); err != nil {
		dlclose(handle)
		releaseActive(c)
		c.fail(api.ErrRequiredSymbolMissing)
		return &api.RuntimeError{Code: api.ErrRequiredSymbolMissing, Op: "load core", Err: err}
	}

	if v := c.symbols.APIVersion(); v != libretro.APIVersion {
		c.symbols.clear()
		dlclose(handle)
		releaseActive(c)
		c.fail(api.ErrCoreLoad)
		return &api.CoreLoadError{
			Code: api.ErrCoreLoad,
			Path: path,
			Err:  fmt.Errorf("core speaks API version %d, host speaks %d", v, libretro.APIVersion),
		}
	}

	c.handle = handle
	c.corePath = path
	c.corePathBuf = libretro.CString(path)

	env, video, sample, batch, poll, state := trampolines()
	c.symbols.SetEnvironment(env)
	c.symbols.Init()
	c.symbols.SetVideoRefresh(video)
	c.symbols.SetAudioSample(sample)
	c.symbols.SetAudioSampleBatch(batch)
	c.symbols.SetInputPoll(poll)
	c.symbols.SetInputState(state)

	var info libretro.SystemInfo
	c.symbols.GetSystemInfo(&info)
	c.coreInfo = CoreInfo{
		Name:         libretro.GoString(info.LibraryName),
		Version:      libretro.GoString(info.LibraryVersion),
		Extensions:   splitExtensions(libretro.GoString(info.ValidExtensions)),
		NeedFullpath: info.NeedFullpath,
		BlockExtract: info.BlockExtract,
	}

	c.coreBound = true
	c.logf(api.LogInfo, "loaded core %s %s", c.coreInfo.Name, c.coreInfo.Version)
	return nil
}

// LoadGame loads game content into the bound core and transitions to
// Ready, emitting the AVDescriptor. Content is read through gameloader
// (transparent archive extraction) unless the core asks for a full path.
func (c *Controller) LoadGame(path string) error {
	if !c.coreBound {
		return ErrNoCoreLoaded
	}
	if c.state != api.StateUninitialized {
		return fmt.Errorf("cannot load game in state %s", c.state)
	}

	var gi libretro.GameInfo
	c.gamePath = path
	c.gamePathBuf = libretro.CString(path)
	gi.Path = libretro.CStringPtr(c.gamePathBuf)

	if c.coreInfo.NeedFullpath {
		// The core reads the file itself; just verify we can see it and
		// that it is not an archive we would otherwise have unpacked.
		if _, err := os.Stat(path); err != nil {
			code := classifyIOError(err, false)
			c.fail(code)
			return &api.GameLoadError{Code: code, Path: path, Err: err}
		}
		if gameloader.IsArchive(path) {
			c.fail(api.ErrGameUnknown)
			return &api.GameLoadError{
				Code: api.ErrGameUnknown,
				Path: path,
				Err:  errors.New("core requires a full path and cannot read archives"),
			}
		}
	} else {
		data, _, err := gameloader.Load(path, c.coreInfo.Extensions)
		if err != nil {
			code := classifyIOError(err, false)
			c.fail(code)
			return &api.GameLoadError{Code: code, Path: path, Err: err}
		}
		if len(data) == 0 {
			c.fail(api.ErrGameUnknown)
			return &api.GameLoadError{Code: api.ErrGameUnknown, Path: path, Err: errors.New("empty game file")}
		}
		c.gameData = data
		gi.Data = unsafe.Pointer(&data[0])
		gi.Size = uintptr(len(data))
	}

	if !c.symbols.LoadGame(&gi) {
		c.fail(api.ErrGameUnknown)
		return &api.GameLoadError{
			Code: api.ErrGameUnknown,
			Path: path,
			Err:  errors.New("core rejected game"),
		}
	}

	var raw libretro.SystemAVInfo
	c.symbols.GetSystemAVInfo(&raw)
	c.applyAVInfo(raw)
	c.pool.configure(c.av, c.pixelFormat.BytesPerPixel())

	// Plug the standard pad into the first two ports; cores that care
	// reconfigure through their own defaults.
	c.symbols.SetControllerPortDevice(0, libretro.DeviceJoypad)
	c.symbols.SetControllerPortDevice(1, libretro.DeviceJoypad)

	if c.symbols.AudioSetState != 0 {
		purego.SyscallN(c.symbols.AudioSetState, 1)
	}

	c.gameLoaded = true
	c.setState(api.ReadyChange(c.av))
	return nil
}

// DoFrame runs the core for one emulated frame and hands every completed
// audio/video buffer to the sink. A no-op outside Ready, and while a frame
// is already running (re-entry from a callback is a core bug).
func (c *Controller) DoFrame() {
	if c.state != api.StateReady || c.inFrame {
		return
	}
	c.inFrame = true
	defer func() { c.inFrame = false }()

	if c.symbols.FrameTime != 0 {
		purego.SyscallN(c.symbols.FrameTime, uintptr(c.frameDeltaUsec()))
	}

	c.symbols.Run()

	if c.symbols.AudioNotify != 0 {
		purego.SyscallN(c.symbols.AudioNotify)
	}

	c.pool.flushAudio()
	c.pool.drain(c.sink, c.pixelFormat)

	if c.shutdownRequested {
		c.shutdownRequested = false
		c.UnloadGame()
	}
}

// Reset resets the running game, as if the console's reset button were
// pressed. No-op outside Ready.
func (c *Controller) Reset() {
	if c.state != api.StateReady {
		return
	}
	c.symbols.Reset()
}

// UnloadGame unloads the game and moves to Finished, terminal for this
// instance's game session.
func (c *Controller) UnloadGame() {
	if c.state != api.StateReady {
		return
	}
	c.symbols.UnloadGame()
	c.vars.clear()
	c.buttonMaps = nil
	c.gameLoaded = false
	c.gameData = nil
	c.setState(api.FinishedChange())
}

// Close tears down the binding: unloads any game, deinitializes the core,
// clears the symbol table, closes the library, and frees the active slot.
// Safe to call more than once.
func (c *Controller) Close() {
	c.UnloadGame()
	if c.coreBound {
		c.symbols.Deinit()
		c.symbols.clear()
		dlclose(c.handle)
		c.handle = 0
		c.coreBound = false
	}
	releaseActive(c)
}

// SaveSRAM copies the core's save RAM region into the controller-owned
// blob and returns it. The bytes are a raw pass-through; persisting them
// is the caller's job. Callers must check for Ready first.
func (c *Controller) SaveSRAM() ([]byte, error) {
	if c.state != api.StateReady {
		return nil, ErrNotReady
	}
	if !c.symbols.HasMemoryAccess() {
		return nil, ErrNotSupported
	}

	size := c.symbols.GetMemorySize(libretro.MemorySaveRAM)
	ptr := c.symbols.GetMemoryData(libretro.MemorySaveRAM)
	if size == 0 || ptr == nil {
		return nil, ErrNotSupported
	}

	src := unsafe.Slice((*byte)(ptr), int(size))
	if len(c.sram) != int(size) {
		c.sram = make([]byte, size)
	}
	copy(c.sram, src)
	return c.sram, nil
}

// LoadSRAM copies data into the core's save RAM region, truncating to the
// region size if data is larger. Callers must check for Ready first.
func (c *Controller) LoadSRAM(data []byte) error {
	if c.state != api.StateReady {
		return ErrNotReady
	}
	if !c.symbols.HasMemoryAccess() {
		return ErrNotSupported
	}

	size := c.symbols.GetMemorySize(libretro.MemorySaveRAM)
	ptr := c.symbols.GetMemoryData(libretro.MemorySaveRAM)
	if size == 0 || ptr == nil {
		return ErrNotSupported
	}

	dst := unsafe.Slice((*byte)(ptr), int(size))
	copy(dst, data)
	if len(c.sram) != int(size) {
		c.sram = make([]byte, size)
	}
	copy(c.sram, dst)
	return nil
}

// SetCheat installs a cheat code at index, replacing whatever that index
// held. The code format is core-defined (Game Genie, raw address, ...).
func (c *Controller) SetCheat(index uint, enabled bool, code string) error {
	if c.state != api.StateReady {
		return ErrNotReady
	}
	if !c.symbols.HasCheats() {
		return ErrNotSupported
	}
	buf := libretro.CString(code)
	c.symbols.CheatSet(uint32(index), enabled, libretro.CStringPtr(buf))
	return nil
}

// ResetCheats removes every installed cheat.
func (c *Controller) ResetCheats() error {
	if c.state != api.StateReady {
		return ErrNotReady
	}
	if !c.symbols.HasCheats() {
		return ErrNotSupported
	}
	c.symbols.CheatReset()
	return nil
}

// Region reports the loaded game's video region. Cores without the entry
// point are NTSC, matching the ABI default.
func (c *Controller) Region() int {
	if c.state != api.StateReady || c.symbols.GetRegion == nil {
		return libretro.RegionNTSC
	}
	return int(c.symbols.GetRegion())
}

// SaveState serializes the complete core state via retro_serialize.
func (c *Controller) SaveState() ([]byte, error) {
	if c.state != api.StateReady {
		return nil, ErrNotReady
	}
	if !c.symbols.CanSerialize() {
		return nil, &api.RuntimeError{Code: api.ErrSerializeFailed, Op: "save state", Err: ErrNotSupported}
	}

	size := c.symbols.SerializeSize()
	if size == 0 {
		return nil, &api.RuntimeError{Code: api.ErrSerializeFailed, Op: "save state", Err: errors.New("core reports zero serialize size")}
	}

	buf := make([]byte, size)
	if !c.symbols.Serialize(unsafe.Pointer(&buf[0]), size) {
		return nil, &api.RuntimeError{Code: api.ErrSerializeFailed, Op: "save state", Err: errors.New("retro_serialize failed")}
	}
	return buf, nil
}

// LoadState restores core state previously captured by SaveState.
func (c *Controller) LoadState(data []byte) error {
	if c.state != api.StateReady {
		return ErrNotReady
	}
	if !c.symbols.CanSerialize() {
		return &api.RuntimeError{Code: api.ErrSerializeFailed, Op: "load state", Err: ErrNotSupported}
	}
	if len(data) == 0 {
		return &api.RuntimeError{Code: api.ErrSerializeFailed, Op: "load state", Err: errors.New("empty state")}
	}

	if !c.symbols.Unserialize(unsafe.Pointer(&data[0]), uintptr(len(data))) {
		return &api.RuntimeError{Code: api.ErrSerializeFailed, Op: "load state", Err: errors.New("retro_unserialize failed")}
	}
	return nil
}

// setState transitions and notifies the listener.
func (c *Controller) setState(change api.StateChange) {
	c.state = change.State()
	if c.listener != nil {
		c.listener.StateChanged(change)
	}
}

// fail transitions to the terminal Error state with the given code.
func (c *Controller) fail(code api.ErrorCode) {
	c.setState(api.ErrorChange(code))
}

// applyAVInfo copies a core-reported av_info struct into the descriptor.
func (c *Controller) applyAVInfo(raw libretro.SystemAVInfo) {
	c.av = api.AVDescriptor{
		FPS:         raw.Timing.FPS,
		SampleRate:  raw.Timing.SampleRate,
		BaseWidth:   int(raw.Geometry.BaseWidth),
		BaseHeight:  int(raw.Geometry.BaseHeight),
		MaxWidth:    int(raw.Geometry.MaxWidth),
		MaxHeight:   int(raw.Geometry.MaxHeight),
		AspectRatio: float64(raw.Geometry.AspectRatio),
		PixelFormat: c.pixelFormat,
	}
}

// seedVariableDefaults applies configured per-core defaults to newly
// declared variables.
func (c *Controller) seedVariableDefaults() {
	for key, value := range c.varDefaults {
		c.vars.Set(key, value)
	}
}

// frameDeltaUsec returns the nominal frame duration in microseconds for
// the frame-time callback.
func (c *Controller) frameDeltaUsec() int64 {
	if c.frameTimeRef != 0 {
		return c.frameTimeRef
	}
	if c.av.FPS > 0 {
		return int64(1000000 / c.av.FPS)
	}
	return 16667
}

// splitExtensions turns the core's "sms|gg|bin" list into lowercase
// dot-prefixed extensions.
func splitExtensions(list string) []string {
	if list == "" {
		return nil
	}
	parts := strings.Split(list, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		out = append(out, p)
	}
	return out
}
