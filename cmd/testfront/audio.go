package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// ringCapacity is ~180ms of 48kHz stereo 16-bit audio.
const ringCapacity = 32768

// audioRing is a byte FIFO between the emulation loop and oto's pull
// reader. Writes past capacity overwrite the oldest data; reads with an
// empty buffer return silence so the player never starves.
type audioRing struct {
	mu     sync.Mutex
	buf    []byte
	start  int
	length int
	closed bool
}

func newAudioRing(capacity int) *audioRing {
	return &audioRing{buf: make([]byte, capacity)}
}

// Write queues samples, dropping the oldest bytes on overflow.
func (r *audioRing) Write(p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(p) > len(r.buf) {
		p = p[len(p)-len(r.buf):]
	}
	for _, b := range p {
		idx := (r.start + r.length) % len(r.buf)
		r.buf[idx] = b
		if r.length < len(r.buf) {
			r.length++
		} else {
			r.start = (r.start + 1) % len(r.buf)
		}
	}
}

// Read implements io.Reader for oto. Underruns are padded with silence.
func (r *audioRing) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, io.EOF
	}

	n := 0
	for n < len(p) && r.length > 0 {
		p[n] = r.buf[r.start]
		r.start = (r.start + 1) % len(r.buf)
		r.length--
		n++
	}
	for n < len(p) {
		p[n] = 0
		n++
	}
	return n, nil
}

func (r *audioRing) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

// audioPlayer plays interleaved int16 stereo samples through oto.
type audioPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	ring   *audioRing
	bytes  []byte
}

// newAudioPlayer opens an oto context at the core's sample rate.
func newAudioPlayer(sampleRate int, volume float64) (*audioPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("audio output not available: %w", err)
	}
	<-ready

	ring := newAudioRing(ringCapacity)
	player := ctx.NewPlayer(ring)
	player.SetVolume(volume)
	player.Play()

	return &audioPlayer{
		ctx:    ctx,
		player: player,
		ring:   ring,
		bytes:  make([]byte, 0, 4096),
	}, nil
}

// queue converts samples to little-endian bytes and hands them to oto.
func (a *audioPlayer) queue(samples []int16) {
	if len(samples) == 0 {
		return
	}
	a.bytes = a.bytes[:0]
	for _, s := range samples {
		a.bytes = append(a.bytes, byte(s), byte(s>>8))
	}
	a.ring.Write(a.bytes)
}

func (a *audioPlayer) close() {
	if a.player != nil {
		a.player.Close()
	}
	if a.ring != nil {
		a.ring.Close()
	}
}
