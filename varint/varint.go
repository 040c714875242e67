// Package varint adapts LEB128 decoder libraries to the width-typed decode
// capability used by the benchmark harness.
//
// Every decode function reads from the start of buf and returns the value
// truncated to the target width together with the number of bytes the
// encoding occupied. Callers must keep at least stream.Padding zero bytes
// readable past the last meaningful value so that a decoder reading one
// value too far lands in padding instead of failing. Once buf is empty the
// decoders return a zero length.
package varint

import (
	"encoding/binary"
	"fmt"

	dvarint "github.com/dennwc/varint"
)

// Target is the set of integer widths a scenario can decode into.
type Target interface {
	~uint8 | ~uint16
}

// Func decodes a single value of width T from the start of buf.
type Func[T Target] func(buf []byte) (T, int)

// Impl names a decoder implementation.
type Impl string

const (
	// Dennwc is the unrolled decoder from github.com/dennwc/varint.
	Dennwc Impl = "dennwc"
	// Binary is encoding/binary.Uvarint, the reference baseline.
	Binary Impl = "binary"
)

// Impls returns the supported implementations, default first.
func Impls() []Impl {
	return []Impl{Dennwc, Binary}
}

// ParseImpl resolves an implementation name.
func ParseImpl(name string) (Impl, error) {
	for _, impl := range Impls() {
		if string(impl) == name {
			return impl, nil
		}
	}

	return "", fmt.Errorf("unknown decoder %q (want one of %v)", name, Impls())
}

// DecoderFor returns the decode function of impl for width T.
func DecoderFor[T Target](impl Impl) (Func[T], error) {
	switch impl {
	case Dennwc:
		return DecodeDennwc[T], nil
	case Binary:
		return DecodeBinary[T], nil
	default:
		return nil, fmt.Errorf("unknown decoder %q", impl)
	}
}

// DecodeDennwc decodes with github.com/dennwc/varint.
func DecodeDennwc[T Target](buf []byte) (T, int) {
	v, n := dvarint.Uvarint(buf)

	return T(v), consumed(n)
}

// DecodeBinary decodes with encoding/binary.
func DecodeBinary[T Target](buf []byte) (T, int) {
	v, n := binary.Uvarint(buf)

	return T(v), consumed(n)
}

// consumed maps the library convention (n == 0 on empty input, n < 0 for
// the bytes read before an overflow) onto a cursor advance.
func consumed(n int) int {
	switch {
	case n > 0:
		return n
	case n == 0:
		return 0
	default:
		return -n
	}
}
