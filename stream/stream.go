// Package stream loads pre-generated LEB128 scenario streams from disk.
//
// A scenario file holds an 8-byte little-endian record count followed by the
// back-to-back encoded values.
package stream

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// HeaderSize is the length of the record count header.
	HeaderSize = 8
	// Padding is the number of zero bytes appended after the payload so
	// decoders may read past the last value. Never reduce it.
	Padding = 16
	// Ext is the scenario file extension.
	Ext = ".bin"
)

// Stream is a loaded, padded scenario payload.
type Stream struct {
	// Bytes holds the encoded payload followed by Padding zero bytes.
	Bytes []byte
	// Count is the number of encoded values, taken from the header.
	Count uint64
}

// EncodedLen returns the payload length without padding.
func (s *Stream) EncodedLen() int {
	return max(len(s.Bytes)-Padding, 0)
}

// Path returns the data file path for a scenario.
func Path(dataDir, name string) string {
	return filepath.Join(dataDir, name+Ext)
}

// Load reads the scenario file for name under dataDir.
func Load(dataDir, name string) (*Stream, error) {
	path := Path(dataDir, name)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf(
			"open data file %s for scenario %s: %w", path, name, err,
		)
	}
	defer f.Close()

	count, err := readHeader(f)
	if err != nil {
		return nil, fmt.Errorf(
			"read header from %s for scenario %s: %w", path, name, err,
		)
	}

	body, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf(
			"read body from %s for scenario %s: %w", path, name, err,
		)
	}

	return &Stream{
		Bytes: append(body, make([]byte, Padding)...),
		Count: count,
	}, nil
}

// Probe opens the scenario file and reads only its header, returning the
// record count. It lets callers fail before any benchmark output is written.
func Probe(dataDir, name string) (uint64, error) {
	path := Path(dataDir, name)

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf(
			"open data file %s for scenario %s: %w", path, name, err,
		)
	}
	defer f.Close()

	count, err := readHeader(f)
	if err != nil {
		return 0, fmt.Errorf(
			"read header from %s for scenario %s: %w", path, name, err,
		)
	}

	return count, nil
}

func readHeader(r io.Reader) (uint64, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(header[:]), nil
}
