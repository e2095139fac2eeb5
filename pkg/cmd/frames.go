package cmd

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/c9s/wavegif/pkg/capture"
	"github.com/c9s/wavegif/pkg/dataset"
	"github.com/c9s/wavegif/pkg/types"
)

func init() {
	RootCmd.AddCommand(FramesCmd)
}

// FramesCmd prints the capture plan against the mock dataset.
var FramesCmd = &cobra.Command{
	Use:          "frames",
	Short:        "show the frames of the chart animation",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := dataset.Produce()
		plan := capture.DefaultPlan
		if err := plan.Validate(len(ds.CorrectiveWave)); err != nil {
			return err
		}

		frames := make([]types.Frame, len(plan))
		for i, step := range plan {
			frames[i] = types.Frame{Index: i, Delay: step.Delay, CorrectivePoints: step.CorrectivePoints}
		}

		printFrames(frames)
		return nil
	},
}

func printFrames(frames []types.Frame) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Frame", "Corrective Points", "Revealed", "Delay"})
	for _, frame := range frames {
		n := frame.CorrectivePoints
		if n > len(dataset.CorrectiveLabels) {
			n = len(dataset.CorrectiveLabels)
		}
		t.AppendRow(table.Row{frame.Index, frame.CorrectivePoints, strings.Join(dataset.CorrectiveLabels[:n], "-"), frame.Delay})
	}
	t.Render()
}
