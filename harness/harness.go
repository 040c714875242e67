package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/weiihann/varbench/stream"
	"github.com/weiihann/varbench/varint"
)

// ErrStreamOverrun reports a payload holding fewer values than its header
// claims: decoding ran into the padding.
var ErrStreamOverrun = errors.New("decoded past end of payload")

// sink receives the decode accumulator so the loop has an observable result.
var sink uint64

// Runner decodes scenario streams with one decoder implementation.
type Runner struct {
	Impl       varint.Impl
	Iterations int
	Logger     *slog.Logger
}

// NewRunner creates a Runner. Iterations below 1 are raised to 1.
func NewRunner(
	impl varint.Impl,
	iterations int,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		Impl:       impl,
		Iterations: max(iterations, 1),
		Logger:     logger.With(slog.String("impl", string(impl))),
	}
}

// Run decodes every value of st Iterations times and returns the
// accumulated timing. Only the decode loop itself is timed.
func (r *Runner) Run(
	ctx context.Context,
	s Scenario,
	st *stream.Stream,
) (*Totals, error) {
	totals := &Totals{
		Scenario:   s.Name,
		Impl:       string(r.Impl),
		Count:      st.Count,
		Iterations: uint64(r.Iterations),
	}

	logger := r.Logger.With(slog.String("scenario", s.Name))
	logger.DebugContext(ctx, "decoding scenario",
		slog.String("width", s.Width.String()),
		slog.Uint64("records", st.Count),
		slog.Int("encoded_bytes", st.EncodedLen()),
	)

	var err error

	switch s.Width {
	case Width8:
		err = runWidth[uint8](ctx, r.Impl, st, r.Iterations, totals)
	case Width16:
		err = runWidth[uint16](ctx, r.Impl, st, r.Iterations, totals)
	default:
		err = fmt.Errorf("unsupported width %d", int(s.Width))
	}

	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	logger.DebugContext(ctx, "scenario decoded",
		slog.Duration("decode_time", time.Duration(min(totals.TotalNs, 1<<63-1))),
	)

	return totals, nil
}

func runWidth[T varint.Target](
	ctx context.Context,
	impl varint.Impl,
	st *stream.Stream,
	iterations int,
	totals *Totals,
) error {
	decode, err := varint.DecoderFor[T](impl)
	if err != nil {
		return err
	}

	return decodeLoop(ctx, decode, st, iterations, totals)
}

func decodeLoop[T varint.Target](
	ctx context.Context,
	decode varint.Func[T],
	st *stream.Stream,
	iterations int,
	totals *Totals,
) error {
	buf := st.Bytes
	count := st.Count
	encodedLen := st.EncodedLen()

	// Every value occupies at least one byte.
	if count > uint64(encodedLen) {
		return fmt.Errorf("%w: header claims %d records, payload has %d bytes",
			ErrStreamOverrun, count, encodedLen)
	}

	var acc uint64

	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		pos := 0
		start := time.Now()

		for j := uint64(0); j < count; j++ {
			v, n := decode(buf[pos:])
			acc += uint64(v)
			pos += n
		}

		elapsed := time.Since(start)

		if pos > encodedLen {
			return fmt.Errorf("%w: %d records consumed %d bytes, payload has %d",
				ErrStreamOverrun, count, pos, encodedLen)
		}

		totals.add(uint64(max(elapsed.Nanoseconds(), 0)), uint64(encodedLen))
	}

	sink = acc

	return nil
}
