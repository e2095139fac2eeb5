package cmd

import (
	"context"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/c9s/wavegif/pkg/cmd/cmdutil"
	"github.com/c9s/wavegif/pkg/render"
	"github.com/c9s/wavegif/pkg/types"
)

func init() {
	cmdutil.SurfaceFlags(RenderCmd.Flags())
	RenderCmd.Flags().StringP("output", "o", "wave.gif", "the output gif file")
	RootCmd.AddCommand(RenderCmd)
}

// wavegif render --driver gochart -o wave.gif
var RenderCmd = &cobra.Command{
	Use:          "render",
	Short:        "render the chart gif into a file",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		renderer, err := cmdutil.NewRenderer()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		bar := pb.Full.Start(len(renderer.Plan))
		renderer.Progress = func(captured, total int) {
			bar.SetCurrent(int64(captured))
		}

		output := viper.GetString("output")

		var frames []types.Frame
		err = renderer.RenderTo(ctx, func(result *render.Result) error {
			frames = result.Frames
			return writeFile(output, result.GIF)
		})
		bar.Finish()

		if err != nil {
			return err
		}

		printFrames(frames)
		log.Infof("chart gif is written to %s", output)
		return nil
	},
}

func writeFile(name string, data []byte) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "create %s", name)
	}

	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	_, err = f.Write(data)
	return err
}
