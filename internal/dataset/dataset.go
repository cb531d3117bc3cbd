// Package dataset reads and writes berry datasets as YAML or JSON files.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/idlab-discover/berryroc/internal/apperr"
	"github.com/idlab-discover/berryroc/internal/berry"
)

// File is the on-disk shape of a dataset.
type File struct {
	Name      string       `json:"name,omitempty" yaml:"name,omitempty"`
	Threshold *float64     `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Items     []berry.Item `json:"items" yaml:"items"`
}

// State converts the file into an initial store state. A scored dataset
// without a threshold starts at berry.DefaultThreshold.
func (f File) State() berry.State {
	s := berry.State{Items: f.Items}
	if f.Threshold != nil {
		s.Threshold = *f.Threshold
	} else {
		s.Threshold = berry.DefaultThreshold
	}
	return s
}

// FromState builds a File from a state.
func FromState(name string, s berry.State) File {
	th := s.Threshold
	return File{Name: name, Threshold: &th, Items: s.Items}
}

// Read loads a dataset from path. format is "json", "yaml" or "auto"; with
// "auto" the file extension decides and anything but .json is read as YAML.
// Items without an ID receive one.
func Read(path string, format string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer f.Close()

	actual, err := ResolveFormat(path, format)
	if err != nil {
		return File{}, err
	}

	ds, err := Decode(f, actual)
	if err != nil {
		return File{}, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if ds.Name == "" {
		ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	logf(ds.Name, "loaded %d items from %s (%s)", len(ds.Items), path, actual)
	return ds, nil
}

// Decode parses and validates a dataset in the given concrete format.
func Decode(r io.Reader, format string) (File, error) {
	var ds File
	switch format {
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&ds); err != nil {
			return File{}, err
		}
	case "yaml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&ds); err != nil && err != io.EOF {
			return File{}, err
		}
	default:
		return File{}, fmt.Errorf("unsupported dataset format: %q", format)
	}

	if err := Validate(ds); err != nil {
		return File{}, err
	}
	berry.AssignIDs(ds.Items)
	return ds, nil
}

// Validate checks the ranges the views rely on. Problems are user errors.
func Validate(ds File) error {
	if ds.Threshold != nil && (*ds.Threshold < 0 || *ds.Threshold > 1) {
		return apperr.Fieldf("threshold", "%v outside [0,1]", *ds.Threshold)
	}
	seen := make(map[string]int, len(ds.Items))
	for i, it := range ds.Items {
		field := fmt.Sprintf("items[%d]", i)
		if it.ID != "" {
			if j, dup := seen[it.ID]; dup {
				return apperr.Fieldf(field+".id", "duplicates items[%d]", j)
			}
			seen[it.ID] = i
		}
		if it.Type != berry.Blueberry && it.Type != berry.Raspberry {
			return apperr.Fieldf(field+".type", "%d is not 0 or 1", it.Type)
		}
		if it.Label == nil && it.Value == nil {
			return apperr.Fieldf(field, "needs a label or a value")
		}
		if it.Label != nil && *it.Label != 0 && *it.Label != 1 {
			return apperr.Fieldf(field+".label", "%d is not 0 or 1", *it.Label)
		}
		if it.Value != nil && (*it.Value < 0 || *it.Value > 1) {
			return apperr.Fieldf(field+".value", "%v outside [0,1]", *it.Value)
		}
	}
	return nil
}

// Write stores ds at path. format is "json", "yaml" or "auto"; with "auto"
// .json selects JSON and anything else YAML. An explicit format must match
// the extension.
func Write(ds File, path string, format string) error {
	actual, err := ResolveFormat(path, format)
	if err != nil {
		return err
	}
	if err := checkExtension(path, actual); err != nil {
		return err
	}

	data, err := Encode(ds, actual)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logf(ds.Name, "wrote %d items to %s (%s)", len(ds.Items), path, actual)
	return nil
}

// Encode marshals v as pretty JSON or YAML.
func Encode(v any, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported dataset format: %q", format)
	}
}

// ResolveFormat maps a user supplied format and a path to "json" or "yaml".
func ResolveFormat(path, format string) (string, error) {
	actual := strings.ToLower(strings.TrimSpace(format))
	switch actual {
	case "", "auto":
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return "json", nil
		}
		return "yaml", nil
	case "json":
		return "json", nil
	case "yaml", "yml":
		return "yaml", nil
	default:
		return "", apperr.Userf("unsupported dataset format: %q (expected json|yaml|auto)", format)
	}
}

func checkExtension(path, format string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch format {
	case "json":
		if ext != ".json" {
			return apperr.Userf("output path extension %q does not match format %q", ext, format)
		}
	case "yaml":
		if ext != ".yaml" && ext != ".yml" {
			return apperr.Userf("output path extension %q does not match format %q", ext, format)
		}
	}
	return nil
}
