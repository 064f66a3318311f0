package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SRAM blobs are raw byte pass-throughs: no header, no versioning. The
// file name is derived from the game's display name so saves survive core
// upgrades.

// SRAMPath returns the path an SRAM blob for gameName lives at.
func SRAMPath(gameName string) (string, error) {
	dir, err := SaveDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sanitizeName(gameName)+".srm"), nil
}

// WriteSRAM persists an SRAM blob for gameName, byte-exact.
func WriteSRAM(gameName string, data []byte) error {
	path, err := SRAMPath(gameName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}
	return atomicWrite(path, data)
}

// ReadSRAM loads a previously written SRAM blob. A missing file is not an
// error; it returns (nil, nil) so first runs start clean.
func ReadSRAM(gameName string) ([]byte, error) {
	path, err := SRAMPath(gameName)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read SRAM: %w", err)
	}
	return data, nil
}

// StatePath returns the path for save state slot of gameName.
func StatePath(gameName string, slot int) (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("%s.state%d", sanitizeName(gameName), slot)), nil
}

// WriteState persists a serialized core state.
func WriteState(gameName string, slot int, data []byte) error {
	path, err := StatePath(gameName, slot)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return atomicWrite(path, data)
}

// ReadState loads a serialized core state. Missing slot returns (nil, nil).
func ReadState(gameName string, slot int) ([]byte, error) {
	path, err := StatePath(gameName, slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	return data, nil
}

// atomicWrite writes data through a temp file and rename so a crash never
// leaves a half-written save.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename %s: %w", tmp, err)
	}
	return nil
}

// sanitizeName strips path separators and control characters from a game
// display name so it is safe as a file name.
func sanitizeName(name string) string {
	if name == "" {
		return "unnamed"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':' || r < 0x20:
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
