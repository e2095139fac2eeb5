package cmd

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/c9s/wavegif/pkg/dataset"
)

func init() {
	DatasetCmd.Flags().String("format", "json", "output format: json or yaml")
	RootCmd.AddCommand(DatasetCmd)
}

// DatasetCmd dumps the chart dataset in the shape the chart page consumes.
var DatasetCmd = &cobra.Command{
	Use:          "dataset",
	Short:        "print the chart dataset",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}

		ds := dataset.Produce()

		switch format {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(ds)

		case "yaml", "yml":
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			if err := enc.Encode(ds); err != nil {
				return err
			}
			return enc.Close()
		}

		return errors.Errorf("unsupported format %q", format)
	},
}
