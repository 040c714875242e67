// Package report turns decode totals into normalized statistics and prints
// them as stable text lines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/weiihann/varbench/harness"
)

const gib = 1 << 30

// Stats holds the derived metrics of one scenario run.
type Stats struct {
	Scenario         string
	Impl             string
	Values           uint64
	TotalNs          uint64
	TotalBytes       uint64
	NsPerValue       float64
	AvgBytesPerValue float64
	GiBPerSec        float64
}

// Compute derives per-value and throughput metrics. Metrics whose
// denominator is zero are reported as 0.
func Compute(t harness.Totals) Stats {
	s := Stats{
		Scenario:   t.Scenario,
		Impl:       t.Impl,
		Values:     t.Values(),
		TotalNs:    t.TotalNs,
		TotalBytes: t.TotalBytes,
	}

	if s.Values > 0 {
		s.NsPerValue = float64(t.TotalNs) / float64(s.Values)
		s.AvgBytesPerValue = float64(t.TotalBytes) / float64(s.Values)
	}

	if t.TotalNs > 0 {
		seconds := float64(t.TotalNs) * 1e-9
		s.GiBPerSec = (float64(t.TotalBytes) / gib) / seconds
	}

	return s
}

// Banner describes the run configuration printed before any result.
type Banner struct {
	DataDir    string
	Iterations int
}

// WriteBanner writes the configuration header.
func WriteBanner(w io.Writer, b Banner) error {
	_, err := fmt.Fprintf(w,
		"varint fair decode benchmark (shared LEB128 streams)\n"+
			"  data_dir   = %s\n"+
			"  iterations = %d\n",
		b.DataDir, b.Iterations,
	)

	return err
}

// WriteLine writes the result line for one scenario.
func WriteLine(w io.Writer, s Stats) error {
	_, err := fmt.Fprintf(w,
		"varint_fs scenario=%s impl=%s values=%d total_ns=%d "+
			"ns_per_value=%.6f avg_bytes_value=%.6f gib_per_s=%.6f\n",
		s.Scenario,
		s.Impl,
		s.Values,
		s.TotalNs,
		s.NsPerValue,
		s.AvgBytesPerValue,
		s.GiBPerSec,
	)

	return err
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(b uint64) string {
	if b == 0 {
		return "-"
	}

	units := []string{"B", "KiB", "MiB", "GiB", "TiB"}
	size := float64(b)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	formatted := fmt.Sprintf("%.1f", size)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")

	return formatted + " " + units[unit]
}
