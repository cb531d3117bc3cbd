package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/berryroc/internal/apperr"
	"github.com/idlab-discover/berryroc/internal/dataset"
	"github.com/idlab-discover/berryroc/internal/explorer"
	"github.com/idlab-discover/berryroc/internal/metrics"
	"github.com/idlab-discover/berryroc/internal/store"
	"github.com/idlab-discover/berryroc/internal/ui"
)

var (
	exploreInput      string
	exploreDataset    string
	exploreFormat     string
	exploreMode       string
	exploreStep       float64
	exploreSave       string
	exploreSaveFormat string
	exploreLogLevel   string
	exploreLogFile    string
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively toggle predictions or move the threshold",
	Long: "Opens a terminal view over a dataset. In labels mode, walk the berries and flip " +
		"their predicted label; in threshold mode, move the discrimination threshold. " +
		"The confusion matrix, rates and ROC plot update on every change.",
	RunE: runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("explore")
	if err != nil {
		return err
	}
	quiet := level == "quiet"

	mode, err := explorer.ParseMode(viper.GetString("explore.mode"))
	if err != nil {
		return err
	}
	step := viper.GetFloat64("explore.step")
	if step <= 0 || step > 1 {
		return apperr.Fieldf("--step", "%v outside (0,1]", step)
	}

	// The terminal belongs to the explorer, so debug logs go to a file.
	if level == "debug" {
		path := viper.GetString("explore.log-file")
		if path == "" {
			path = "berryroc-debug.log"
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		wireLogging(level, f)
	} else {
		wireLogging(level, nil)
	}

	fallback := "labelled"
	if mode == explorer.ModeThreshold {
		fallback = "scored"
	}
	in, err := loadInput("explore", fallback)
	if err != nil {
		return err
	}
	if mode == explorer.ModeThreshold && !metrics.Scored(in.state.Items) {
		return apperr.Userf("dataset %q has no scores; use --mode labels", in.name)
	}

	s := store.New(in.state, store.WithName(in.name))
	final, err := explorer.Run(s, explorer.Config{Dataset: in.name, Mode: mode, Step: step})
	if err != nil {
		return err
	}

	if save := viper.GetString("explore.save"); save != "" {
		if err := dataset.Write(dataset.FromState(in.name, final), save, viper.GetString("explore.save-format")); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatus("success", "Saved dataset to "+save))
		}
	}

	ui.NewReportUI(cmd.OutOrStdout(), quiet).PrintSimpleReport(buildReport(in.name, final, mode == explorer.ModeLabels))
	return nil
}

func init() {
	exploreCmd.Flags().StringVarP(&exploreInput, "input", "i", "", "Path to a dataset file (json|yaml)")
	exploreCmd.Flags().StringVar(&exploreDataset, "dataset", "", "Built-in dataset when no --input is given: labelled|scored")
	exploreCmd.Flags().StringVarP(&exploreFormat, "format", "f", "", "Input format: json|yaml|auto")
	exploreCmd.Flags().StringVarP(&exploreMode, "mode", "m", "", "What to manipulate: labels|threshold")
	exploreCmd.Flags().Float64Var(&exploreStep, "step", explorer.DefaultStep, "Threshold change per key press")
	exploreCmd.Flags().StringVar(&exploreSave, "save", "", "Write the final dataset to this path on exit")
	exploreCmd.Flags().StringVar(&exploreSaveFormat, "save-format", "", "Format of --save: json|yaml|auto")
	exploreCmd.Flags().StringVar(&exploreLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	exploreCmd.Flags().StringVar(&exploreLogFile, "log-file", "", "Debug log destination (default berryroc-debug.log)")

	// Bind all flags to viper for config file support
	viper.BindPFlag("explore.input", exploreCmd.Flags().Lookup("input"))
	viper.BindPFlag("explore.dataset", exploreCmd.Flags().Lookup("dataset"))
	viper.BindPFlag("explore.format", exploreCmd.Flags().Lookup("format"))
	viper.BindPFlag("explore.mode", exploreCmd.Flags().Lookup("mode"))
	viper.BindPFlag("explore.step", exploreCmd.Flags().Lookup("step"))
	viper.BindPFlag("explore.save", exploreCmd.Flags().Lookup("save"))
	viper.BindPFlag("explore.save-format", exploreCmd.Flags().Lookup("save-format"))
	viper.BindPFlag("explore.log-level", exploreCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("explore.log-file", exploreCmd.Flags().Lookup("log-file"))
}
