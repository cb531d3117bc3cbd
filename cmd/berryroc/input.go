package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/idlab-discover/berryroc/internal/apperr"
	"github.com/idlab-discover/berryroc/internal/berry"
	"github.com/idlab-discover/berryroc/internal/dataset"
	"github.com/idlab-discover/berryroc/internal/store"
)

// resolveLogLevel reads "<command>.log-level" and checks it.
func resolveLogLevel(command string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(viper.GetString(command + ".log-level")))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		return level, nil
	default:
		return "", apperr.Fieldf("--log-level", "invalid value %q (expected quiet|standard|debug)", level)
	}
}

// wireLogging points the internal package loggers at w in debug mode and
// disables them otherwise.
func wireLogging(level string, w io.Writer) {
	if level != "debug" {
		w = nil
	}
	store.SetLogger(w)
	dataset.SetLogger(w)
}

// input is a loaded dataset ready to seed a store.
type input struct {
	name  string
	state berry.State
}

// loadInput reads "<command>.input" when set, otherwise the built-in dataset
// named by "<command>.dataset" (fallback when empty).
func loadInput(command, fallback string) (input, error) {
	if path := viper.GetString(command + ".input"); path != "" {
		format := viper.GetString(command + ".format")
		if format == "" {
			format = "auto"
		}
		ds, err := dataset.Read(path, format)
		if err != nil {
			return input{}, err
		}
		return input{name: ds.Name, state: ds.State()}, nil
	}

	name := strings.ToLower(strings.TrimSpace(viper.GetString(command + ".dataset")))
	if name == "" {
		name = fallback
	}
	return loadDemo(name)
}

// loadDemo returns a built-in dataset by name.
func loadDemo(name string) (input, error) {
	if !slices.Contains(berry.DemoNames(), name) {
		return input{}, apperr.Fieldf("--dataset", "unknown dataset %q (expected %s)", name, strings.Join(berry.DemoNames(), "|"))
	}
	st, err := berry.Demo(name)
	if err != nil {
		return input{}, err
	}
	return input{name: name, state: st}, nil
}

// thresholdOverride returns "<command>.threshold" when it was set by a flag,
// the environment or the config file.
func thresholdOverride(command string) (float64, bool, error) {
	key := command + ".threshold"
	if !viper.IsSet(key) {
		return 0, false, nil
	}
	t := viper.GetFloat64(key)
	if t < 0 || t > 1 {
		return 0, false, apperr.Fieldf("--threshold", "%v outside [0,1]", t)
	}
	return t, true, nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
