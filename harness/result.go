// Package harness runs timed varint decode loops over scenario streams.
package harness

import "math/bits"

// Totals accumulates one scenario's timing and byte counts across
// iterations.
type Totals struct {
	Scenario   string
	Impl       string
	Count      uint64
	Iterations uint64
	TotalNs    uint64
	TotalBytes uint64
}

// Values returns the number of values decoded, saturating at MaxUint64.
func (t Totals) Values() uint64 {
	hi, lo := bits.Mul64(t.Count, t.Iterations)
	if hi != 0 {
		return ^uint64(0)
	}

	return lo
}

// add records one iteration.
func (t *Totals) add(ns, encodedBytes uint64) {
	t.TotalNs = saturatingAdd(t.TotalNs, ns)
	t.TotalBytes = saturatingAdd(t.TotalBytes, encodedBytes)
}

func saturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return ^uint64(0)
	}

	return sum
}
