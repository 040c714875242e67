package harness

import (
	"fmt"

	"github.com/weiihann/varbench/stream"
)

// Width is the integer width a scenario decodes into.
type Width int

const (
	Width8  Width = 8
	Width16 Width = 16
)

func (w Width) String() string {
	return fmt.Sprintf("u%d", int(w))
}

// Scenario is one benchmark case. Name doubles as the data file base name.
type Scenario struct {
	Name  string
	Width Width
}

// Scenarios returns the benchmark cases in run order.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "u8_1b", Width: Width8},
		{Name: "u8_2b", Width: Width8},
		{Name: "u16_2b", Width: Width16},
	}
}

// ResolvePath returns the data file path for a scenario given the data
// directory.
func ResolvePath(dataDir string, s Scenario) string {
	return stream.Path(dataDir, s.Name)
}

// Preflight checks that every scenario file exists and carries a readable
// header, so a broken data directory fails before any result is printed.
// It returns the record counts in scenario order.
func Preflight(dataDir string, scenarios []Scenario) ([]uint64, error) {
	counts := make([]uint64, 0, len(scenarios))

	for _, s := range scenarios {
		count, err := stream.Probe(dataDir, s.Name)
		if err != nil {
			return nil, err
		}

		counts = append(counts, count)
	}

	return counts, nil
}
