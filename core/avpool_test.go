package core

import (
	"testing"

	"github.com/team-phoenix/TestFront/api"
)

func testDescriptor() api.AVDescriptor {
	return api.AVDescriptor{
		FPS:        60,
		SampleRate: 48000,
		BaseWidth:  256, BaseHeight: 224,
		MaxWidth: 256, MaxHeight: 240,
	}
}

// collectSink records everything drained out of the pool.
type collectSink struct {
	videos []api.VideoFrame
	audios []api.AudioChunk
}

func (s *collectSink) VideoFrame(f api.VideoFrame) { s.videos = append(s.videos, f) }
func (s *collectSink) AudioChunk(c api.AudioChunk) { s.audios = append(s.audios, c) }

// TestPoolVideoWrite verifies a completed frame comes back intact.
func TestPoolVideoWrite(t *testing.T) {
	p := newAVPool()
	p.configure(testDescriptor(), 2)

	pixels := make([]byte, 256*2*240)
	pixels[0] = 0xAB
	pixels[len(pixels)-1] = 0xCD
	p.writeVideo(pixels, 256, 240, 256*2)

	sink := &collectSink{}
	p.drain(sink, api.PixelFormatRGB565)

	if len(sink.videos) != 1 {
		t.Fatalf("drained %d frames, want 1", len(sink.videos))
	}
	f := sink.videos[0]
	if f.Width != 256 || f.Height != 240 || f.Pitch != 512 {
		t.Errorf("geometry = %dx%d pitch %d", f.Width, f.Height, f.Pitch)
	}
	if f.Pixels[0] != 0xAB || f.Pixels[len(f.Pixels)-1] != 0xCD {
		t.Error("pixel data corrupted")
	}
	if f.Format != api.PixelFormatRGB565 {
		t.Errorf("format = %v", f.Format)
	}
}

// TestPoolVideoWrapOverwrite verifies the wrap + overwrite policy: 31
// consecutive writes retain exactly 30 entries, the 31st landing in slot 0.
func TestPoolVideoWrapOverwrite(t *testing.T) {
	p := newAVPool()
	p.configure(testDescriptor(), 2)

	frame := make([]byte, 16*2*16)
	for i := 0; i < poolSlots+1; i++ {
		p.writeVideo(frame, 16, 16, 32)
	}

	if got := p.pendingVideo(); got != poolSlots {
		t.Fatalf("pending = %d, want %d", got, poolSlots)
	}
	if first := p.completedVideo[0]; first != 1 {
		t.Errorf("oldest retained slot = %d, want 1 (slot 0 was overwritten)", first)
	}
	if last := p.completedVideo[len(p.completedVideo)-1]; last != 0 {
		t.Errorf("newest slot = %d, want 0 (wrap)", last)
	}
}

// TestPoolAudioSlotCompletion verifies samples accumulate until the slot
// reaches one frame's worth and then complete.
func TestPoolAudioSlotCompletion(t *testing.T) {
	p := newAVPool()
	p.configure(testDescriptor(), 2) // 800 stereo frames -> 1600 int16 per slot

	half := make([]int16, p.audioSlotCap/2)
	p.pushSamples(half)
	if got := p.pendingAudio(); got != 0 {
		t.Fatalf("pending after half slot = %d, want 0", got)
	}

	p.pushSamples(half)
	if got := p.pendingAudio(); got != 1 {
		t.Fatalf("pending after full slot = %d, want 1", got)
	}
}

// TestPoolAudioBatchSpansSlots verifies a batch crossing a slot boundary
// completes the first slot and carries the remainder into the next.
func TestPoolAudioBatchSpansSlots(t *testing.T) {
	p := newAVPool()
	p.configure(testDescriptor(), 2)

	batch := make([]int16, p.audioSlotCap+10)
	p.pushSamples(batch)

	if got := p.pendingAudio(); got != 1 {
		t.Fatalf("pending = %d, want 1", got)
	}
	if got := p.audio.current().fill; got != 10 {
		t.Errorf("carry into next slot = %d int16s, want 10", got)
	}
}

// TestPoolFlushAudio verifies a partial slot is completed at end of frame
// and drains with only its filled samples.
func TestPoolFlushAudio(t *testing.T) {
	p := newAVPool()
	p.configure(testDescriptor(), 2)

	p.pushSamples([]int16{1, 2, 3, 4})
	p.flushAudio()

	sink := &collectSink{}
	p.drain(sink, api.PixelFormat0RGB1555)

	if len(sink.audios) != 1 {
		t.Fatalf("drained %d chunks, want 1", len(sink.audios))
	}
	got := sink.audios[0].Samples
	if len(got) != 4 {
		t.Fatalf("chunk has %d samples, want 4", len(got))
	}
	for i, want := range []int16{1, 2, 3, 4} {
		if got[i] != want {
			t.Errorf("samples[%d] = %d, want %d", i, got[i], want)
		}
	}

	// Flushing an empty slot is a no-op.
	p.flushAudio()
	if got := p.pendingAudio(); got != 0 {
		t.Errorf("pending after empty flush = %d, want 0", got)
	}
}

// TestPoolDrainClearsPending verifies drain consumes the pending lists.
func TestPoolDrainClearsPending(t *testing.T) {
	p := newAVPool()
	p.configure(testDescriptor(), 2)

	frame := make([]byte, 32*16)
	p.writeVideo(frame, 16, 16, 32)

	sink := &collectSink{}
	p.drain(sink, api.PixelFormat0RGB1555)
	p.drain(sink, api.PixelFormat0RGB1555)

	if len(sink.videos) != 1 {
		t.Errorf("double drain emitted %d frames, want 1", len(sink.videos))
	}
}

// TestPoolDrainNilSink verifies a missing consumer still clears pending
// entries instead of accumulating forever.
func TestPoolDrainNilSink(t *testing.T) {
	p := newAVPool()
	p.configure(testDescriptor(), 2)

	p.writeVideo(make([]byte, 32*16), 16, 16, 32)
	p.drain(nil, api.PixelFormat0RGB1555)

	if got := p.pendingVideo(); got != 0 {
		t.Errorf("pending after nil drain = %d, want 0", got)
	}
}

// TestPoolVideoGrowsForLargePitch verifies an oversized pitch grows the
// slot instead of truncating.
func TestPoolVideoGrowsForLargePitch(t *testing.T) {
	p := newAVPool()
	p.configure(testDescriptor(), 2)

	// Pitch larger than max_width * bpp.
	pitch := 2048
	frame := make([]byte, pitch*240)
	frame[pitch*240-1] = 0x7F
	p.writeVideo(frame, 256, 240, pitch)

	sink := &collectSink{}
	p.drain(sink, api.PixelFormatRGB565)
	f := sink.videos[0]
	if len(f.Pixels) != pitch*240 {
		t.Fatalf("pixels len = %d, want %d", len(f.Pixels), pitch*240)
	}
	if f.Pixels[len(f.Pixels)-1] != 0x7F {
		t.Error("tail byte lost")
	}
}
