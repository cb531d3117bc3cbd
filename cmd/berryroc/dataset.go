package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/berryroc/internal/dataset"
	"github.com/idlab-discover/berryroc/internal/ui"
)

var (
	datasetName     string
	datasetOutput   string
	datasetFormat   string
	datasetLogLevel string
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Export a built-in dataset",
	Long:  "Writes one of the built-in berry datasets to a file, as a starting point for your own.",
	RunE:  runDataset,
}

func runDataset(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("dataset")
	if err != nil {
		return err
	}
	wireLogging(level, cmd.ErrOrStderr())

	name := strings.ToLower(strings.TrimSpace(viper.GetString("dataset.name")))
	if name == "" {
		name = "labelled"
	}
	in, err := loadDemo(name)
	if err != nil {
		return err
	}

	output := viper.GetString("dataset.output")
	format := viper.GetString("dataset.format")
	if output == "" {
		output = name + ".yaml"
		if strings.EqualFold(format, "json") {
			output = name + ".json"
		}
	}

	ds := dataset.FromState(in.name, in.state)
	if output == "-" {
		actual, err := dataset.ResolveFormat("", format)
		if err != nil {
			return err
		}
		data, err := dataset.Encode(ds, actual)
		if err != nil {
			return err
		}
		return writeOutput(output, data)
	}

	if err := dataset.Write(ds, output, format); err != nil {
		return err
	}
	if level != "quiet" {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatus("success",
			fmt.Sprintf("Wrote %d berries to %s", len(ds.Items), ui.Highlight.Render(output))))
	}
	return nil
}

func init() {
	datasetCmd.Flags().StringVarP(&datasetName, "name", "n", "", "Built-in dataset: labelled|scored")
	datasetCmd.Flags().StringVarP(&datasetOutput, "output", "o", "", "Output path, - for stdout (default <name>.yaml)")
	datasetCmd.Flags().StringVarP(&datasetFormat, "format", "f", "", "Output format: json|yaml|auto")
	datasetCmd.Flags().StringVar(&datasetLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	// Bind all flags to viper for config file support
	viper.BindPFlag("dataset.name", datasetCmd.Flags().Lookup("name"))
	viper.BindPFlag("dataset.output", datasetCmd.Flags().Lookup("output"))
	viper.BindPFlag("dataset.format", datasetCmd.Flags().Lookup("format"))
	viper.BindPFlag("dataset.log-level", datasetCmd.Flags().Lookup("log-level"))
}
