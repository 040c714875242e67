// Package streamtest writes deterministic scenario files for tests.
package streamtest

import (
	"encoding/binary"
	"fmt"
	"io"
	mrand "math/rand"
	"os"
	"path/filepath"
)

// Config controls generated stream contents. Values are drawn uniformly
// from [MinValue, MaxValue].
type Config struct {
	Count    int
	MinValue uint64
	MaxValue uint64
	Seed     int64
}

// Summary describes a written stream.
type Summary struct {
	Count        uint64
	PayloadBytes int
}

// Generator produces deterministic streams from a Config.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Values returns the next Count values.
func (g *Generator) Values() []uint64 {
	values := make([]uint64, g.cfg.Count)
	span := g.cfg.MaxValue - g.cfg.MinValue + 1

	for i := range values {
		values[i] = g.cfg.MinValue + uint64(g.rng.Int63n(int64(span)))
	}

	return values
}

// Generate writes a scenario file body for the next Count values to w.
func (g *Generator) Generate(w io.Writer) (Summary, error) {
	return Write(w, g.Values())
}

// Write encodes values as a scenario file: header then LEB128 payload.
func Write(w io.Writer, values []uint64) (Summary, error) {
	return WriteRaw(w, uint64(len(values)), Encode(values...))
}

// WriteRaw writes a header claiming count records followed by payload,
// which need not match count.
func WriteRaw(w io.Writer, count uint64, payload []byte) (Summary, error) {
	var header [8]byte
	binary.LittleEndian.PutUint64(header[:], count)

	if _, err := w.Write(header[:]); err != nil {
		return Summary{}, fmt.Errorf("write header: %w", err)
	}

	if _, err := w.Write(payload); err != nil {
		return Summary{}, fmt.Errorf("write payload: %w", err)
	}

	return Summary{Count: count, PayloadBytes: len(payload)}, nil
}

// Encode returns the back-to-back LEB128 encoding of values.
func Encode(values ...uint64) []byte {
	var buf []byte
	for _, v := range values {
		buf = binary.AppendUvarint(buf, v)
	}

	return buf
}

// WriteFile writes values to <dir>/<name>.bin and returns the path.
func WriteFile(dir, name string, values []uint64) (string, error) {
	path := filepath.Join(dir, name+".bin")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := Write(f, values); err != nil {
		f.Close()

		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

// Repeat returns n copies of v.
func Repeat(v uint64, n int) []uint64 {
	values := make([]uint64, n)
	for i := range values {
		values[i] = v
	}

	return values
}
