package core

import (
	"unsafe"

	"github.com/team-phoenix/TestFront/api"
	"github.com/team-phoenix/TestFront/libretro"
)

// ButtonMapping associates a core-defined human-readable label with one
// input, as declared through EnvSetInputDescriptors. Cores declare many of
// these; they are kept as an ordered sequence in declaration order.
type ButtonMapping struct {
	Port   uint
	Device uint
	Index  uint
	ID     uint
	Label  string
}

// handleEnvironment is the environment-negotiation protocol: the core
// passes a command code and an opaque data pointer, the host reads or
// writes through it and reports whether the command was handled. Unknown
// commands are unhandled, never errors.
func (c *Controller) handleEnvironment(cmd uint32, data unsafe.Pointer) bool {
	switch cmd {
	case libretro.EnvGetOverscan:
		if data == nil {
			return false
		}
		*(*bool)(data) = false
		return true

	case libretro.EnvGetCanDupe:
		if data == nil {
			return false
		}
		*(*bool)(data) = true
		return true

	case libretro.EnvSetMessage:
		if data == nil {
			return false
		}
		m := (*libretro.Message)(data)
		c.log(api.LogInfo, libretro.GoString(m.Msg))
		return true

	case libretro.EnvShutdown:
		// Honored after the current frame completes; the core must not be
		// torn down from inside its own run call.
		c.shutdownRequested = true
		return true

	case libretro.EnvSetPerformanceLevel:
		if data == nil {
			return false
		}
		c.performanceLevel = *(*uint32)(data)
		return true

	case libretro.EnvGetSystemDirectory:
		return c.answerDirectory(data, c.systemDirBuf)

	case libretro.EnvGetSaveDirectory:
		return c.answerDirectory(data, c.saveDirBuf)

	case libretro.EnvGetLibretroPath:
		return c.answerDirectory(data, c.corePathBuf)

	case libretro.EnvSetPixelFormat:
		if data == nil {
			return false
		}
		format := int(*(*int32)(data))
		if libretro.BytesPerPixel(format) == 0 {
			return false
		}
		c.pixelFormat = api.PixelFormat(format)
		return true

	case libretro.EnvSetInputDescriptors:
		if data == nil {
			return false
		}
		c.buttonMaps = c.buttonMaps[:0]
		descs := (*libretro.InputDescriptor)(data)
		for d := descs; d.Description != nil; d = (*libretro.InputDescriptor)(unsafe.Add(unsafe.Pointer(d), unsafe.Sizeof(*d))) {
			c.buttonMaps = append(c.buttonMaps, ButtonMapping{
				Port:   uint(d.Port),
				Device: uint(d.Device),
				Index:  uint(d.Index),
				ID:     uint(d.ID),
				Label:  libretro.GoString(d.Description),
			})
		}
		return true

	case libretro.EnvSetKeyboardCallback:
		if data == nil {
			return false
		}
		c.symbols.KeyboardEvent = (*libretro.KeyboardCallback)(data).Callback
		return true

	case libretro.EnvSetHWRender:
		if data == nil || c.hwHandler == nil {
			return false
		}
		hw := (*libretro.HWRenderCallback)(data)
		return c.hwHandler.SetHWRender(api.HWRenderRequest{
			ContextType: hw.ContextType,
			Payload:     data,
		})

	case libretro.EnvGetVariable:
		if data == nil {
			return false
		}
		v := (*libretro.RawVariable)(data)
		ptr := c.vars.valuePtr(libretro.GoString(v.Key))
		v.Value = ptr
		return ptr != nil

	case libretro.EnvSetVariables:
		if data == nil {
			return false
		}
		raw := (*libretro.RawVariable)(data)
		for v := raw; v.Key != nil; v = (*libretro.RawVariable)(unsafe.Add(unsafe.Pointer(v), unsafe.Sizeof(*v))) {
			c.vars.Declare(libretro.GoString(v.Key), libretro.GoString(v.Value))
		}
		c.seedVariableDefaults()
		return true

	case libretro.EnvGetVariableUpdate:
		if data == nil {
			return false
		}
		*(*bool)(data) = c.vars.consumeUpdate()
		return true

	case libretro.EnvSetSupportNoGame:
		if data == nil {
			return false
		}
		c.supportsNoGame = *(*bool)(data)
		return true

	case libretro.EnvSetFrameTimeCallback:
		if data == nil {
			return false
		}
		ft := (*libretro.FrameTimeCallback)(data)
		c.symbols.FrameTime = ft.Callback
		c.frameTimeRef = ft.Reference
		return true

	case libretro.EnvSetAudioCallback:
		if data == nil {
			return false
		}
		ac := (*libretro.AudioCallback)(data)
		c.symbols.AudioNotify = ac.Callback
		c.symbols.AudioSetState = ac.SetState
		return true

	case libretro.EnvGetLogInterface:
		if data == nil {
			return false
		}
		trampolines()
		(*libretro.LogCallback)(data).Log = cbLog
		return true

	case libretro.EnvSetSystemAVInfo:
		if data == nil {
			return false
		}
		c.applyAVInfo(*(*libretro.SystemAVInfo)(data))
		c.pool.configure(c.av, int(c.pixelFormat.BytesPerPixel()))
		return true

	case libretro.EnvSetGeometry:
		if data == nil {
			return false
		}
		g := (*libretro.GameGeometry)(data)
		c.av.BaseWidth = int(g.BaseWidth)
		c.av.BaseHeight = int(g.BaseHeight)
		c.av.AspectRatio = float64(g.AspectRatio)
		return true
	}

	return false
}

// answerDirectory writes a retained NUL-terminated path into a
// const char** response slot. Unhandled when the host has no such path.
func (c *Controller) answerDirectory(data unsafe.Pointer, buf []byte) bool {
	if data == nil || len(buf) <= 1 {
		return false
	}
	*(**byte)(data) = libretro.CStringPtr(buf)
	return true
}
