package stream_test

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/varbench/stream"
	"github.com/weiihann/varbench/stream/streamtest"
)

func TestLoadHeaderAndPadding(t *testing.T) {
	dir := t.TempDir()
	data := []byte{0x03, 0, 0, 0, 0, 0, 0, 0, 0x01, 0x02, 0x03}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "u8_1b.bin"), data, 0o644))

	s, err := stream.Load(dir, "u8_1b")
	require.NoError(t, err)

	assert.Equal(t, uint64(3), s.Count)
	assert.Len(t, s.Bytes, 3+stream.Padding)
	assert.Equal(t, 3, s.EncodedLen())
	assert.Equal(t, []byte{1, 2, 3}, s.Bytes[:3])
	assert.Equal(t, make([]byte, stream.Padding), s.Bytes[3:])
}

func TestLoadEmptyPayload(t *testing.T) {
	dir := t.TempDir()
	_, err := streamtest.WriteFile(dir, "empty", nil)
	require.NoError(t, err)

	s, err := stream.Load(dir, "empty")
	require.NoError(t, err)

	assert.Zero(t, s.Count)
	assert.Len(t, s.Bytes, stream.Padding)
	assert.Zero(t, s.EncodedLen())
}

func TestLoadGenerated(t *testing.T) {
	dir := t.TempDir()
	gen := streamtest.NewGenerator(streamtest.Config{
		Count:    1000,
		MinValue: 128,
		MaxValue: 16383,
		Seed:     7,
	})

	var buf bytes.Buffer
	summary, err := gen.Generate(&buf)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(stream.Path(dir, "u16_2b"), buf.Bytes(), 0o644))

	s, err := stream.Load(dir, "u16_2b")
	require.NoError(t, err)

	assert.Equal(t, summary.Count, s.Count)
	assert.Equal(t, 2000, summary.PayloadBytes)
	assert.Equal(t, summary.PayloadBytes, s.EncodedLen())
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := stream.Load(dir, "u8_1b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), stream.Path(dir, "u8_1b"))
	assert.Contains(t, err.Error(), "scenario u8_1b")

	_, err = stream.Probe(dir, "u8_1b")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadShortHeader(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty", nil, io.EOF},
		{"short", []byte{1, 0, 0}, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(stream.Path(dir, "s"), tt.data, 0o644))

			_, err := stream.Load(dir, "s")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "read header")

			_, err = stream.Probe(dir, "s")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	_, err := streamtest.WriteFile(dir, "u8_2b", streamtest.Repeat(300, 42))
	require.NoError(t, err)

	count, err := stream.Probe(dir, "u8_2b")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), count)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(stream.Path(dir, "u8_1b"), 0o755))

	_, err := stream.Load(dir, "u8_1b")
	assert.Error(t, err)
}
