package core

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/team-phoenix/TestFront/api"
	"github.com/team-phoenix/TestFront/libretro"
)

// The bridge is the set of ABI-matching functions the core calls back
// into. Each is wrapped exactly once by purego.NewCallback (the trampoline
// count is process-limited, so the pointers are created lazily and cached
// for the process lifetime) and forwards into the active Controller.
//
// Every bridge function runs on the same stack as the retro_run (or
// retro_load_game) call that triggered it. No fault may propagate back
// across the ABI boundary, so each body recovers panics and reports them
// through the log sink.

var (
	trampolineOnce sync.Once

	cbEnvironment  uintptr
	cbVideoRefresh uintptr
	cbAudioSample  uintptr
	cbAudioBatch   uintptr
	cbInputPoll    uintptr
	cbInputState   uintptr
	cbLog          uintptr
)

func trampolines() (env, video, sample, batch, poll, state uintptr) {
	trampolineOnce.Do(func() {
		cbEnvironment = purego.NewCallback(environmentCallback)
		cbVideoRefresh = purego.NewCallback(videoRefreshCallback)
		cbAudioSample = purego.NewCallback(audioSampleCallback)
		cbAudioBatch = purego.NewCallback(audioSampleBatchCallback)
		cbInputPoll = purego.NewCallback(inputPollCallback)
		cbInputState = purego.NewCallback(inputStateCallback)
		cbLog = purego.NewCallback(logCallback)
	})
	return cbEnvironment, cbVideoRefresh, cbAudioSample, cbAudioBatch, cbInputPoll, cbInputState
}

// guard recovers a panic escaping a bridge function and routes it to the
// log sink instead of letting it cross into the core's stack frames.
func guard(name string) {
	if r := recover(); r != nil {
		if c := activeController(); c != nil {
			c.logf(api.LogError, "panic in %s callback: %v", name, r)
		}
	}
}

// audioSampleCallback receives one interleaved stereo frame.
func audioSampleCallback(left, right int16) {
	defer guard("audio_sample")

	c := activeController()
	if c == nil {
		return
	}
	c.pool.pushSamples([]int16{left, right})
}

// audioSampleBatchCallback receives frames stereo frames at once. The ABI
// allows partial consumption; this host always consumes everything.
func audioSampleBatchCallback(data unsafe.Pointer, frames uintptr) uintptr {
	defer guard("audio_sample_batch")

	c := activeController()
	if c == nil || data == nil || frames == 0 {
		return frames
	}
	samples := unsafe.Slice((*int16)(data), int(frames)*2)
	c.pool.pushSamples(samples)
	return frames
}

// videoRefreshCallback receives one frame's pixels. A nil data pointer is
// the "duplicate previous frame" sentinel: nothing is copied and the pool
// index must not advance.
func videoRefreshCallback(data unsafe.Pointer, width, height uint32, pitch uintptr) {
	defer guard("video_refresh")

	c := activeController()
	if c == nil || data == nil {
		return
	}
	src := unsafe.Slice((*byte)(data), int(pitch)*int(height))
	c.pool.writeVideo(src, int(width), int(height), int(pitch))
}

// inputPollCallback relays the per-frame input poll to the provider.
func inputPollCallback() {
	defer guard("input_poll")

	c := activeController()
	if c == nil || c.input == nil {
		return
	}
	c.input.Poll()
}

// inputStateCallback relays one input query to the provider. The bridge
// holds no input state of its own.
func inputStateCallback(port, device, index, id uint32) int16 {
	defer guard("input_state")

	c := activeController()
	if c == nil || c.input == nil {
		return 0
	}
	return c.input.InputState(uint(port), uint(device), uint(index), uint(id))
}

// environmentCallback dispatches the negotiation protocol. Unknown
// commands return false (unhandled), never an error.
func environmentCallback(cmd uint32, data unsafe.Pointer) bool {
	defer guard("environment")

	c := activeController()
	if c == nil {
		return false
	}
	return c.handleEnvironment(cmd, data)
}

// logCallback receives printf-style log calls from the core. The varargs
// that follow the format string are read as integer-register words and
// formatted best-effort; see formatLogMessage. Never fails, never blocks.
func logCallback(level uint32, format unsafe.Pointer, a1, a2, a3, a4 uintptr) {
	defer guard("log")

	c := activeController()
	if c == nil {
		return
	}

	raw := libretro.GoString((*byte)(format))
	msg := formatLogMessage(raw, [4]uintptr{a1, a2, a3, a4})

	lvl := api.LogLevel(level)
	if lvl < api.LogDebug || lvl > api.LogError {
		lvl = api.LogInfo
	}
	c.log(lvl, msg)
}

// logf formats a host-side message into the log sink.
func (c *Controller) logf(level api.LogLevel, format string, args ...any) {
	c.log(level, fmt.Sprintf(format, args...))
}

// log writes one line to the sink, if any.
func (c *Controller) log(level api.LogLevel, msg string) {
	if c.logSink == nil {
		return
	}
	c.logSink.Log(level, msg)
}
