package main

import (
	"bytes"
	"io"
	"testing"
)

func TestAudioRingRoundTrip(t *testing.T) {
	r := newAudioRing(16)
	r.Write([]byte{1, 2, 3, 4})

	out := make([]byte, 4)
	n, err := r.Read(out)
	if err != nil || n != 4 {
		t.Fatalf("read %d, %v", n, err)
	}
	if !bytes.Equal(out, []byte{1, 2, 3, 4}) {
		t.Errorf("read % X", out)
	}
}

func TestAudioRingUnderrunPadsSilence(t *testing.T) {
	r := newAudioRing(16)
	r.Write([]byte{7, 8})

	out := make([]byte, 6)
	n, err := r.Read(out)
	if err != nil || n != 6 {
		t.Fatalf("read %d, %v", n, err)
	}
	if !bytes.Equal(out, []byte{7, 8, 0, 0, 0, 0}) {
		t.Errorf("read % X", out)
	}
}

func TestAudioRingOverflowDropsOldest(t *testing.T) {
	r := newAudioRing(4)
	r.Write([]byte{1, 2, 3, 4})
	r.Write([]byte{5, 6})

	out := make([]byte, 4)
	if _, err := r.Read(out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, []byte{3, 4, 5, 6}) {
		t.Errorf("read % X, want oldest dropped", out)
	}
}

func TestAudioRingOversizedWrite(t *testing.T) {
	r := newAudioRing(4)
	r.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	out := make([]byte, 4)
	if _, err := r.Read(out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, []byte{5, 6, 7, 8}) {
		t.Errorf("read % X, want newest tail", out)
	}
}

func TestAudioRingClose(t *testing.T) {
	r := newAudioRing(4)
	r.Write([]byte{1})
	r.Close()

	if _, err := r.Read(make([]byte, 1)); err != io.EOF {
		t.Errorf("read after close: %v, want io.EOF", err)
	}
}
