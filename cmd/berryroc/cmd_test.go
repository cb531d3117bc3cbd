package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	yaml "go.yaml.in/yaml/v3"

	"github.com/idlab-discover/berryroc/internal/apperr"
	"github.com/idlab-discover/berryroc/internal/berry"
	"github.com/idlab-discover/berryroc/internal/dataset"
	"github.com/idlab-discover/berryroc/internal/metrics"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("berryroc %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestResolveLogLevel(t *testing.T) {
	t.Cleanup(func() { viper.Set("test.log-level", "") })

	if level, err := resolveLogLevel("test"); err != nil || level != "standard" {
		t.Fatalf("default level = (%q, %v), want standard", level, err)
	}
	viper.Set("test.log-level", " Debug ")
	if level, err := resolveLogLevel("test"); err != nil || level != "debug" {
		t.Fatalf("level = (%q, %v), want debug", level, err)
	}
	viper.Set("test.log-level", "loud")
	if _, err := resolveLogLevel("test"); !apperr.IsUser(err) {
		t.Fatalf("expected user error, got %v", err)
	}
}

func TestLoadDemo(t *testing.T) {
	in, err := loadDemo("scored")
	if err != nil {
		t.Fatalf("loadDemo: %v", err)
	}
	if in.name != "scored" || len(in.state.Items) != 12 || in.state.Threshold != 0.5 {
		t.Fatalf("unexpected input: %s %d %v", in.name, len(in.state.Items), in.state.Threshold)
	}

	if _, err := loadDemo("strawberries"); !apperr.IsUser(err) {
		t.Fatalf("expected user error, got %v", err)
	}
}

func TestMetricsCommand_PlainSummary(t *testing.T) {
	out := execute(t, "metrics", "--dataset", "labelled", "--plain-summary")

	want := "Dataset: labelled | label | tp=3 fp=3 tn=5 fn=1\n" +
		"sensitivity: 3/4 (0.75)\n"
	if !strings.Contains(out, want) {
		t.Fatalf("output missing %q:\n%s", want, out)
	}
}

func TestExploreCommand_RejectsNonPositiveStep(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"explore", "--step", "0"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		exploreCmd.Flags().Set("step", "0.01")
	})

	err := rootCmd.Execute()
	if !apperr.IsUser(err) || !strings.Contains(err.Error(), "--step") {
		t.Fatalf("expected a --step user error, got %v", err)
	}
}

func TestBuildReport_LabelsOnScoredDataset(t *testing.T) {
	in, err := loadDemo("scored")
	if err != nil {
		t.Fatalf("loadDemo: %v", err)
	}
	st := in.state.Merge(berry.SetItems(berry.ToggleLabel(in.state.Items, in.state.Items[0].ID)))

	byLabel := buildReport("scored", st, true)
	if byLabel.Threshold != nil {
		t.Fatalf("label report carries a threshold")
	}
	if want := (metrics.Counts{TP: 1, TN: 8, FN: 3}); byLabel.Counts != want {
		t.Fatalf("label counts = %+v, want %+v", byLabel.Counts, want)
	}

	byThreshold := buildReport("scored", st, false)
	if want := (metrics.Counts{TP: 3, FP: 3, TN: 5, FN: 1}); byThreshold.Counts != want {
		t.Fatalf("threshold counts = %+v, want %+v", byThreshold.Counts, want)
	}
}

func TestDatasetCommand_WritesReadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored.json")
	execute(t, "dataset", "--name", "scored", "--output", path, "--log-level", "quiet")

	ds, err := dataset.Read(path, "auto")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if ds.Name != "scored" || len(ds.Items) != 12 {
		t.Fatalf("dataset = %s with %d items", ds.Name, len(ds.Items))
	}
	if ds.Threshold == nil || *ds.Threshold != 0.5 {
		t.Fatalf("threshold = %v, want 0.5", ds.Threshold)
	}
}

func TestROCCommand_Output(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roc.yaml")
	execute(t, "roc", "--dataset", "scored", "--output", path, "--log-level", "quiet")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var doc rocCurve
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.Dataset != "scored" || len(doc.Points) != 13 {
		t.Fatalf("doc = %s with %d points", doc.Dataset, len(doc.Points))
	}
	first, last := doc.Points[0], doc.Points[len(doc.Points)-1]
	if first.FPR != 1 || first.TPR != 1 || last.FPR != 0 || last.TPR != 0 {
		t.Fatalf("endpoints = %+v .. %+v", first, last)
	}
	if doc.Current.FPR != 0.375 || doc.Current.TPR != 0.75 {
		t.Fatalf("current = %+v, want {0.375 0.75}", doc.Current)
	}
}
