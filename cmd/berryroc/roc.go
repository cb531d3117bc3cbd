package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/berryroc/internal/apperr"
	"github.com/idlab-discover/berryroc/internal/berry"
	"github.com/idlab-discover/berryroc/internal/dataset"
	"github.com/idlab-discover/berryroc/internal/metrics"
	"github.com/idlab-discover/berryroc/internal/store"
	"github.com/idlab-discover/berryroc/internal/ui"
)

var (
	rocInput        string
	rocDataset      string
	rocFormat       string
	rocThreshold    float64
	rocOutput       string
	rocOutputFormat string
	rocLogLevel     string
	rocPlainSummary bool
)

// rocCurve is the document written by --output.
type rocCurve struct {
	Dataset   string          `json:"dataset" yaml:"dataset"`
	Threshold float64         `json:"threshold" yaml:"threshold"`
	Current   metrics.Point   `json:"current" yaml:"current"`
	Points    []metrics.Point `json:"points" yaml:"points"`
}

var rocCmd = &cobra.Command{
	Use:   "roc",
	Short: "Compute the ROC curve of a scored dataset",
	Long: "Sweeps the discrimination threshold over a scored dataset and prints one " +
		"(false positive rate, true positive rate) point per berry plus the origin.",
	RunE: runROC,
}

func runROC(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("roc")
	if err != nil {
		return err
	}
	wireLogging(level, cmd.ErrOrStderr())

	in, err := loadInput("roc", "scored")
	if err != nil {
		return err
	}
	if !metrics.Scored(in.state.Items) {
		return apperr.Userf("dataset %q has no scores; the ROC curve needs a value on every berry", in.name)
	}

	s := store.New(in.state, store.WithName(in.name))
	t, set, err := thresholdOverride("roc")
	if err != nil {
		return err
	}
	if set {
		s.SetState(berry.SetThreshold(t))
	}

	st := s.State()
	doc := rocCurve{
		Dataset:   in.name,
		Threshold: st.Threshold,
		Current:   metrics.Tally(st.Items, metrics.AtThreshold(st.Threshold)).Point(),
		Points:    metrics.Curve(st.Items),
	}

	if output := viper.GetString("roc.output"); output != "" {
		format, err := dataset.ResolveFormat(output, viper.GetString("roc.output-format"))
		if err != nil {
			return err
		}
		data, err := dataset.Encode(doc, format)
		if err != nil {
			return fmt.Errorf("encode roc curve: %w", err)
		}
		if err := writeOutput(output, data); err != nil {
			return err
		}
		if level != "quiet" && output != "-" {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatStatus("success", fmt.Sprintf("Wrote %d points to %s", len(doc.Points), output)))
		}
		return nil
	}

	reportUI := ui.NewReportUI(cmd.OutOrStdout(), level == "quiet")
	if viper.GetBool("roc.plain-summary") {
		reportUI.PrintSimpleCurve(doc.Points)
		return nil
	}
	reportUI.PrintCurve(in.name, doc.Points, &doc.Current)
	return nil
}

func init() {
	rocCmd.Flags().StringVarP(&rocInput, "input", "i", "", "Path to a dataset file (json|yaml)")
	rocCmd.Flags().StringVar(&rocDataset, "dataset", "", "Built-in dataset when no --input is given: scored")
	rocCmd.Flags().StringVarP(&rocFormat, "format", "f", "", "Input format: json|yaml|auto")
	rocCmd.Flags().Float64VarP(&rocThreshold, "threshold", "t", 0, "Threshold of the highlighted operating point")
	rocCmd.Flags().StringVarP(&rocOutput, "output", "o", "", "Write the curve to a file (- for stdout)")
	rocCmd.Flags().StringVar(&rocOutputFormat, "output-format", "", "Output format: json|yaml|auto")
	rocCmd.Flags().StringVar(&rocLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	rocCmd.Flags().BoolVar(&rocPlainSummary, "plain-summary", false, "Print one \"fpr tpr\" pair per line (no styling)")

	// Bind all flags to viper for config file support
	viper.BindPFlag("roc.input", rocCmd.Flags().Lookup("input"))
	viper.BindPFlag("roc.dataset", rocCmd.Flags().Lookup("dataset"))
	viper.BindPFlag("roc.format", rocCmd.Flags().Lookup("format"))
	viper.BindPFlag("roc.threshold", rocCmd.Flags().Lookup("threshold"))
	viper.BindPFlag("roc.output", rocCmd.Flags().Lookup("output"))
	viper.BindPFlag("roc.output-format", rocCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("roc.log-level", rocCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("roc.plain-summary", rocCmd.Flags().Lookup("plain-summary"))
}
