package core

import "github.com/team-phoenix/TestFront/api"

// poolSlots is the capacity of each ring. One slot holds one frame's worth
// of data, so at a typical 30 fps the pool covers about a second.
const poolSlots = 30

// ring is a fixed-capacity ring of slots with a wrapping write index.
// When the consumer falls behind, the oldest unread slot is overwritten;
// the pool never blocks the core mid-frame.
type ring[T any] struct {
	slots []T
	idx   int
}

func newRing[T any](n int) ring[T] {
	return ring[T]{slots: make([]T, n)}
}

// current returns the active write slot.
func (r *ring[T]) current() *T {
	return &r.slots[r.idx]
}

// advance marks the current slot done and moves the write index, wrapping
// modulo capacity. Returns the index of the slot just completed.
func (r *ring[T]) advance() int {
	done := r.idx
	r.idx = (r.idx + 1) % len(r.slots)
	return done
}

// audioSlot accumulates one frame's worth of interleaved stereo samples.
type audioSlot struct {
	samples []int16
	fill    int
}

// videoSlot holds one completed video frame.
type videoSlot struct {
	pixels []byte
	width  int
	height int
	pitch  int
	used   int
}

// avPool owns the two independently-indexed buffer rings that absorb the
// callback bursts produced inside one retro_run call, plus the lists of
// slots completed since the consumer last drained.
type avPool struct {
	audio ring[audioSlot]
	video ring[videoSlot]

	// Interleaved int16 count one audio slot holds (2 per stereo frame).
	audioSlotCap int

	completedAudio []int
	completedVideo []int
}

func newAVPool() *avPool {
	return &avPool{
		audio: newRing[audioSlot](poolSlots),
		video: newRing[videoSlot](poolSlots),
	}
}

// configure sizes the pool for a loaded game's timing and geometry.
// Called once per game load, before any callback can fire.
func (p *avPool) configure(av api.AVDescriptor, bytesPerPixel int) {
	frames := av.SamplesPerFrame()
	if frames <= 0 {
		frames = 800 // 48kHz at 60fps, a sane fallback for broken timing
	}
	p.audioSlotCap = frames * 2

	videoCap := av.MaxWidth * av.MaxHeight * bytesPerPixel
	for i := range p.audio.slots {
		p.audio.slots[i] = audioSlot{samples: make([]int16, p.audioSlotCap)}
	}
	for i := range p.video.slots {
		p.video.slots[i] = videoSlot{pixels: make([]byte, videoCap)}
	}
	p.audio.idx = 0
	p.video.idx = 0
	p.completedAudio = p.completedAudio[:0]
	p.completedVideo = p.completedVideo[:0]
}

// pushSamples appends interleaved stereo samples to the current audio
// slot, completing and advancing slots as they fill. Crossing a slot
// boundary mid-batch is fine; the remainder lands in the next slot.
func (p *avPool) pushSamples(samples []int16) {
	if p.audioSlotCap == 0 {
		return
	}
	for len(samples) > 0 {
		slot := p.audio.current()
		n := copy(slot.samples[slot.fill:], samples)
		slot.fill += n
		samples = samples[n:]

		if slot.fill >= p.audioSlotCap {
			p.markAudioDone(p.audio.advance())
			p.audio.current().fill = 0
		}
	}
}

// writeVideo copies one frame's pixel data into the current video slot,
// completes it, and advances. A nil src is the caller's problem; the dupe
// sentinel is filtered in the bridge before reaching the pool.
func (p *avPool) writeVideo(src []byte, width, height, pitch int) {
	slot := p.video.current()
	need := pitch * height
	if cap(slot.pixels) < need {
		slot.pixels = make([]byte, need)
	}
	slot.pixels = slot.pixels[:cap(slot.pixels)]
	n := copy(slot.pixels, src[:need])
	slot.width = width
	slot.height = height
	slot.pitch = pitch
	slot.used = n
	p.markVideoDone(p.video.advance())
}

func (p *avPool) markAudioDone(idx int) {
	p.completedAudio = append(p.completedAudio, idx)
	if len(p.completedAudio) > poolSlots {
		// Consumer fell behind; the oldest entry's slot has been or is
		// about to be overwritten. Drop it.
		p.completedAudio = p.completedAudio[1:]
	}
}

func (p *avPool) markVideoDone(idx int) {
	p.completedVideo = append(p.completedVideo, idx)
	if len(p.completedVideo) > poolSlots {
		p.completedVideo = p.completedVideo[1:]
	}
}

// drain hands every completed slot to the sink as a read-only view, in
// completion order, then clears the pending lists. The views stay valid
// until the next frame step writes those slots again.
func (p *avPool) drain(sink api.FrameSink, format api.PixelFormat) {
	if sink == nil {
		p.completedAudio = p.completedAudio[:0]
		p.completedVideo = p.completedVideo[:0]
		return
	}

	for _, idx := range p.completedVideo {
		slot := &p.video.slots[idx]
		sink.VideoFrame(api.VideoFrame{
			Pixels: slot.pixels[:slot.used],
			Width:  slot.width,
			Height: slot.height,
			Pitch:  slot.pitch,
			Format: format,
		})
	}
	p.completedVideo = p.completedVideo[:0]

	for _, idx := range p.completedAudio {
		slot := &p.audio.slots[idx]
		sink.AudioChunk(api.AudioChunk{Samples: slot.samples[:slot.fill]})
	}
	p.completedAudio = p.completedAudio[:0]
}

// flushAudio completes a partially-filled audio slot at end of frame so
// the consumer is not left a frame behind on cores that emit slightly
// fewer samples than the nominal rate.
func (p *avPool) flushAudio() {
	slot := p.audio.current()
	if slot.fill == 0 {
		return
	}
	idx := p.audio.advance()
	p.audio.current().fill = 0
	p.markAudioDone(idx)
}

// pendingVideo returns how many completed video frames await the consumer.
func (p *avPool) pendingVideo() int { return len(p.completedVideo) }

// pendingAudio returns how many completed audio buffers await the consumer.
func (p *avPool) pendingAudio() int { return len(p.completedAudio) }
