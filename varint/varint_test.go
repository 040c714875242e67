package varint

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(values ...uint64) []byte {
	var buf []byte
	for _, v := range values {
		buf = binary.AppendUvarint(buf, v)
	}

	return append(buf, make([]byte, 16)...)
}

func TestDecodeSingleByte(t *testing.T) {
	for _, impl := range Impls() {
		t.Run(string(impl), func(t *testing.T) {
			decode, err := DecoderFor[uint8](impl)
			require.NoError(t, err)

			for v := uint64(0); v < 128; v++ {
				got, n := decode(encode(v))
				assert.Equal(t, 1, n, "value %d", v)
				assert.Equal(t, uint8(v), got)
			}
		})
	}
}

func TestDecodeTwoBytes(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		want8 uint8
	}{
		{"128", 128, 128},
		{"200", 200, 200},
		{"300 truncates", 300, 44},
		{"16383", 16383, 255},
	}

	for _, impl := range Impls() {
		for _, tt := range tests {
			t.Run(string(impl)+"/"+tt.name, func(t *testing.T) {
				buf := encode(tt.value)

				d8, err := DecoderFor[uint8](impl)
				require.NoError(t, err)
				got8, n := d8(buf)
				assert.Equal(t, 2, n)
				assert.Equal(t, tt.want8, got8)

				d16, err := DecoderFor[uint16](impl)
				require.NoError(t, err)
				got16, n := d16(buf)
				assert.Equal(t, 2, n)
				assert.Equal(t, uint16(tt.value), got16)
			})
		}
	}
}

func TestDecodeStream(t *testing.T) {
	values := []uint64{1, 200, 127, 128, 300, 0, 16000}
	buf := encode(values...)

	for _, impl := range Impls() {
		t.Run(string(impl), func(t *testing.T) {
			decode, err := DecoderFor[uint16](impl)
			require.NoError(t, err)

			pos := 0
			for _, want := range values {
				got, n := decode(buf[pos:])
				require.Positive(t, n)
				assert.Equal(t, uint16(want), got)
				pos += n
			}
			assert.Equal(t, len(buf)-16, pos)
		})
	}
}

func TestImplsAgree(t *testing.T) {
	buf := encode(0, 1, 127, 128, 255, 256, 300, 16383, 16384, 65535)

	pos := 0
	for pos < len(buf)-16 {
		a, na := DecodeDennwc[uint16](buf[pos:])
		b, nb := DecodeBinary[uint16](buf[pos:])
		require.Equal(t, nb, na, "offset %d", pos)
		require.Equal(t, b, a, "offset %d", pos)
		pos += na
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, impl := range Impls() {
		decode, err := DecoderFor[uint8](impl)
		require.NoError(t, err)

		v, n := decode(nil)
		assert.Zero(t, v, impl)
		assert.Zero(t, n, impl)
	}
}

func TestParseImpl(t *testing.T) {
	impl, err := ParseImpl("dennwc")
	require.NoError(t, err)
	assert.Equal(t, Dennwc, impl)

	impl, err = ParseImpl("binary")
	require.NoError(t, err)
	assert.Equal(t, Binary, impl)

	_, err = ParseImpl("simd")
	assert.Error(t, err)

	_, err = DecoderFor[uint8]("simd")
	assert.Error(t, err)
}

func benchmarkDecode(b *testing.B, decode Func[uint16], value uint64) {
	buf := encode(value)

	b.ReportAllocs()
	b.SetBytes(int64(len(buf) - 16))

	var sink uint16
	for i := 0; i < b.N; i++ {
		v, _ := decode(buf)
		sink += v
	}

	if sink == 1 {
		b.Log(sink)
	}
}

func BenchmarkDecode(b *testing.B) {
	for _, impl := range Impls() {
		decode, err := DecoderFor[uint16](impl)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(string(impl)+"/1byte", func(b *testing.B) {
			benchmarkDecode(b, decode, 100)
		})
		b.Run(string(impl)+"/2byte", func(b *testing.B) {
			benchmarkDecode(b, decode, 300)
		})
	}
}
