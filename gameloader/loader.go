// Package gameloader reads game content for cores that take data in
// memory. Compressed archives (ZIP, 7z, gzip, tar.gz, RAR) are detected by
// magic bytes and extracted transparently; anything else is loaded as-is.
package gameloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Archive signatures
var (
	magicZIP      = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEmpty = []byte{0x50, 0x4B, 0x05, 0x06}
	magic7z       = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip     = []byte{0x1F, 0x8B}
	magicRAR      = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// maxGameSize caps extracted content (64MB covers every cartridge system;
// CD images need fullpath cores anyway).
const maxGameSize = 64 * 1024 * 1024

// ErrNoGameFile is returned when an archive holds no file matching the
// core's extensions.
var ErrNoGameFile = errors.New("no game file found in archive")

// ErrTooLarge is returned when content exceeds the size limit.
var ErrTooLarge = errors.New("game file exceeds maximum size limit")

// extractFunc extracts matching content from an archive at path.
type extractFunc func(path string, extensions []string) ([]byte, string, error)

// Load reads game content from path. Archives are detected by magic bytes
// regardless of their own extension; the first member matching one of the
// core-reported extensions wins. A non-archive file is returned whole.
//
// Returns the content, the display name (member basename for archives),
// and any error. Filesystem errors come back unwrapped enough for
// errors.Is against fs.ErrNotExist / fs.ErrPermission.
func Load(path string, extensions []string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("read header: %w", err)
	}

	if extract := archiveExtractor(header[:n]); extract != nil {
		return extract(path, extensions)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("seek: %w", err)
	}
	data, err := readLimited(f)
	if err != nil {
		return nil, "", fmt.Errorf("read game: %w", err)
	}
	return data, filepath.Base(path), nil
}

// IsArchive reports whether the file at path looks like a supported
// archive. Used to refuse archives for cores that read content themselves.
func IsArchive(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, 8)
	n, _ := f.Read(header)
	return archiveExtractor(header[:n]) != nil
}

// archiveExtractor matches magic bytes to an extractor, or nil for raw
// content.
func archiveExtractor(header []byte) extractFunc {
	switch {
	case bytes.HasPrefix(header, magicZIP), bytes.HasPrefix(header, magicZIPEmpty):
		return extractZIP
	case bytes.HasPrefix(header, magic7z):
		return extract7z
	case bytes.HasPrefix(header, magicRAR):
		return extractRAR
	case bytes.HasPrefix(header, magicGzip):
		return extractGzip
	}
	return nil
}

// matchesExtension checks a name against the core's extension list,
// case-insensitively. An empty list matches everything: some cores report
// no extensions at all.
func matchesExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// readLimited reads r fully, failing past maxGameSize.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxGameSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxGameSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
