package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile exports stats as Prometheus gauges in the node exporter
// textfile format. The file is replaced atomically.
func WriteTextfile(path string, stats []Stats) error {
	reg := prometheus.NewRegistry()
	labels := []string{"scenario", "impl"}

	nsPerValue := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "varbench_ns_per_value",
		Help: "Mean decode latency per value in nanoseconds.",
	}, labels)
	bytesPerValue := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "varbench_avg_bytes_per_value",
		Help: "Mean encoded size per value in bytes.",
	}, labels)
	throughput := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "varbench_gib_per_second",
		Help: "Decode throughput in GiB of encoded input per second.",
	}, labels)
	values := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "varbench_values_total",
		Help: "Values decoded across all iterations.",
	}, labels)
	seconds := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "varbench_decode_seconds_total",
		Help: "Time spent inside the decode loop.",
	}, labels)

	for _, c := range []prometheus.Collector{
		nsPerValue, bytesPerValue, throughput, values, seconds,
	} {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register collector: %w", err)
		}
	}

	for _, s := range stats {
		nsPerValue.WithLabelValues(s.Scenario, s.Impl).Set(s.NsPerValue)
		bytesPerValue.WithLabelValues(s.Scenario, s.Impl).Set(s.AvgBytesPerValue)
		throughput.WithLabelValues(s.Scenario, s.Impl).Set(s.GiBPerSec)
		values.WithLabelValues(s.Scenario, s.Impl).Set(float64(s.Values))
		seconds.WithLabelValues(s.Scenario, s.Impl).Set(float64(s.TotalNs) * 1e-9)
	}

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write textfile %s: %w", path, err)
	}

	return nil
}
