// Package config resolves benchmark settings from the environment, an
// optional dotenv file and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/weiihann/varbench/varint"
)

// Setting keys. With AutomaticEnv each key maps to its upper-cased
// environment variable.
const (
	KeyDataDir  = "fs_bench_data_dir"
	KeyIters    = "iters"
	KeyImpl     = "varbench_impl"
	KeyTextfile = "textfile"
)

// DefaultIterations is used when ITERS is unset or not a positive integer.
const DefaultIterations = 20

// ErrDataDirUnset is returned when no data directory was configured.
var ErrDataDirUnset = errors.New(
	"FS_BENCH_DATA_DIR is not set; it must point to the shared data directory",
)

// Config holds resolved benchmark settings.
type Config struct {
	DataDir    string
	Iterations int
	Impl       varint.Impl
	Textfile   string
}

// LoadEnvFile loads a dotenv file into the process environment without
// overriding variables that are already set. A missing file is ignored.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("load env file %s: %w", path, err)
	}

	return nil
}

// New returns a viper instance reading the benchmark environment. Flags,
// when given, override the environment only if set on the command line.
func New(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(KeyImpl, string(varint.Dennwc))

	if flags == nil {
		return v, nil
	}

	bindings := map[string]string{
		KeyDataDir:  "data-dir",
		KeyIters:    "iters",
		KeyImpl:     "impl",
		KeyTextfile: "textfile",
	}

	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}

	return v, nil
}

// Load resolves a Config from v.
func Load(v *viper.Viper) (Config, error) {
	dataDir := strings.TrimSpace(v.GetString(KeyDataDir))
	if dataDir == "" {
		return Config{}, ErrDataDirUnset
	}

	impl, err := varint.ParseImpl(v.GetString(KeyImpl))
	if err != nil {
		return Config{}, err
	}

	return Config{
		DataDir:    dataDir,
		Iterations: ParseIterations(v.GetString(KeyIters)),
		Impl:       impl,
		Textfile:   v.GetString(KeyTextfile),
	}, nil
}

// ParseIterations returns the positive decimal integer in s, or
// DefaultIterations when s is empty, malformed, zero or negative.
func ParseIterations(s string) int {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 31)
	if err != nil || n == 0 {
		return DefaultIterations
	}

	return int(n)
}
