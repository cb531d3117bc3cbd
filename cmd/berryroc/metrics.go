package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/berryroc/internal/apperr"
	"github.com/idlab-discover/berryroc/internal/berry"
	"github.com/idlab-discover/berryroc/internal/metrics"
	"github.com/idlab-discover/berryroc/internal/store"
	"github.com/idlab-discover/berryroc/internal/ui"
)

var (
	metricsInput        string
	metricsDataset      string
	metricsFormat       string
	metricsThreshold    float64
	metricsInteractive  bool
	metricsLogLevel     string
	metricsPlainSummary bool
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print the confusion matrix and rates of a dataset",
	Long: "Classifies a dataset and prints its confusion matrix with sensitivity, specificity, " +
		"false positive rate, false negative rate and precision. Labelled datasets are classified " +
		"by their predicted labels, scored datasets by the discrimination threshold.",
	RunE: runMetrics,
}

func runMetrics(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("metrics")
	if err != nil {
		return err
	}
	wireLogging(level, cmd.ErrOrStderr())

	in, err := loadInput("metrics", "labelled")
	if err != nil {
		return err
	}
	s := store.New(in.state, store.WithName(in.name))
	scored := metrics.Scored(in.state.Items)

	t, set, err := thresholdOverride("metrics")
	if err != nil {
		return err
	}
	if set {
		if !scored {
			return apperr.User("--threshold needs a scored dataset")
		}
		s.SetState(berry.SetThreshold(t))
	}

	if viper.GetBool("metrics.interactive") {
		if !scored {
			return apperr.User("--interactive needs a scored dataset")
		}
		t, err := ui.PromptThreshold(in.name, s.State().Threshold)
		if err != nil {
			return err
		}
		s.SetState(berry.SetThreshold(t))
	}

	report := buildReport(in.name, s.State(), !scored)
	reportUI := ui.NewReportUI(cmd.OutOrStdout(), level == "quiet")
	if viper.GetBool("metrics.plain-summary") {
		reportUI.PrintSimpleReport(report)
		return nil
	}
	reportUI.PrintReport(report)
	return nil
}

// buildReport classifies st by label when byLabel is set and by its
// threshold otherwise.
func buildReport(name string, st berry.State, byLabel bool) ui.MetricsReport {
	classify := metrics.ByLabel()
	if !byLabel {
		classify = metrics.AtThreshold(st.Threshold)
	}
	c := metrics.Tally(st.Items, classify)
	report := ui.MetricsReport{Dataset: name, Counts: c, Summary: c.Summary()}
	if !byLabel {
		th := st.Threshold
		report.Threshold = &th
	}
	return report
}

func init() {
	metricsCmd.Flags().StringVarP(&metricsInput, "input", "i", "", "Path to a dataset file (json|yaml)")
	metricsCmd.Flags().StringVar(&metricsDataset, "dataset", "", "Built-in dataset when no --input is given: labelled|scored")
	metricsCmd.Flags().StringVarP(&metricsFormat, "format", "f", "", "Input format: json|yaml|auto")
	metricsCmd.Flags().Float64VarP(&metricsThreshold, "threshold", "t", 0, "Discrimination threshold in [0,1] (scored datasets)")
	metricsCmd.Flags().BoolVar(&metricsInteractive, "interactive", false, "Ask for the threshold interactively (scored datasets)")
	metricsCmd.Flags().StringVar(&metricsLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	metricsCmd.Flags().BoolVar(&metricsPlainSummary, "plain-summary", false, "Print a plain summary (no styling)")

	// Bind all flags to viper for config file support
	viper.BindPFlag("metrics.input", metricsCmd.Flags().Lookup("input"))
	viper.BindPFlag("metrics.dataset", metricsCmd.Flags().Lookup("dataset"))
	viper.BindPFlag("metrics.format", metricsCmd.Flags().Lookup("format"))
	viper.BindPFlag("metrics.threshold", metricsCmd.Flags().Lookup("threshold"))
	viper.BindPFlag("metrics.interactive", metricsCmd.Flags().Lookup("interactive"))
	viper.BindPFlag("metrics.log-level", metricsCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("metrics.plain-summary", metricsCmd.Flags().Lookup("plain-summary"))
}
