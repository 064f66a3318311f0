package api

import "unsafe"

// PixelFormat identifies the pixel encoding of video frames. Values match
// the libretro pixel format enum.
type PixelFormat int

const (
	PixelFormat0RGB1555 PixelFormat = 0
	PixelFormatXRGB8888 PixelFormat = 1
	PixelFormatRGB565   PixelFormat = 2
)

// String returns the format name for logs.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormat0RGB1555:
		return "0RGB1555"
	case PixelFormatXRGB8888:
		return "XRGB8888"
	case PixelFormatRGB565:
		return "RGB565"
	}
	return "unknown"
}

// BytesPerPixel returns the size of one pixel in this format, or 0 for an
// unknown format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormat0RGB1555, PixelFormatRGB565:
		return 2
	case PixelFormatXRGB8888:
		return 4
	}
	return 0
}

// AVDescriptor describes the audio/video output of one loaded game:
// timing, geometry, and pixel format. Produced once after game load,
// immutable until reset or reload.
type AVDescriptor struct {
	FPS         float64
	SampleRate  float64
	BaseWidth   int
	BaseHeight  int
	MaxWidth    int
	MaxHeight   int
	AspectRatio float64
	PixelFormat PixelFormat
}

// SamplesPerFrame returns the number of stereo sample frames one video
// frame's worth of audio holds, or 0 if timing is unset.
func (d AVDescriptor) SamplesPerFrame() int {
	if d.FPS <= 0 {
		return 0
	}
	return int(d.SampleRate / d.FPS)
}

// VideoFrame is a read-only view of one completed video frame. Pixels is
// valid until the pool slot it lives in is written again; consumers that
// keep frames must copy.
type VideoFrame struct {
	Pixels []byte
	Width  int
	Height int
	Pitch  int // bytes per row, may exceed Width*bytesPerPixel
	Format PixelFormat
}

// AudioChunk is a read-only view of one completed audio buffer:
// interleaved 16-bit stereo samples. Same validity rule as VideoFrame.
type AudioChunk struct {
	Samples []int16
}

// FrameSink consumes completed audio and video buffers. Calls happen on
// the thread driving DoFrame, strictly between frame steps.
type FrameSink interface {
	VideoFrame(frame VideoFrame)
	AudioChunk(chunk AudioChunk)
}

// InputProvider answers the core's input queries. The host holds no input
// state of its own; it only relays.
type InputProvider interface {
	// Poll is called once per frame before input state queries.
	Poll()

	// InputState returns the state of one input. For digital inputs the
	// result is 0 or 1; for analog, a signed axis value.
	InputState(port, device, index, id uint) int16
}

// LogLevel mirrors the libretro log levels.
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

// String returns the level name for logs.
func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DEBUG"
	case LogInfo:
		return "INFO"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	}
	return "?"
}

// LogSink receives log lines from the core and the host. Implementations
// must not fail and must not block.
type LogSink interface {
	Log(level LogLevel, msg string)
}

// LogSinkFunc adapts a function to the LogSink interface.
type LogSinkFunc func(level LogLevel, msg string)

// Log calls f.
func (f LogSinkFunc) Log(level LogLevel, msg string) { f(level, msg) }

// HWRenderRequest is the hardware-render negotiation payload, forwarded to
// the consumer untouched apart from the context type.
type HWRenderRequest struct {
	ContextType uint32

	// Payload points at the core's retro_hw_render_callback struct. The
	// consumer fills the frontend-supplied fields before returning true.
	Payload unsafe.Pointer
}

// HWRenderHandler lets a consumer accept hardware-rendered contexts. A
// host with no handler reports the request unhandled to the core.
type HWRenderHandler interface {
	// SetHWRender returns whether the consumer can provide the requested
	// context.
	SetHWRender(req HWRenderRequest) bool
}
