package cmd

import (
	"context"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/c9s/wavegif/pkg/cmd/cmdutil"
	"github.com/c9s/wavegif/pkg/server"
)

func init() {
	cmdutil.SurfaceFlags(ServeCmd.Flags())
	ServeCmd.Flags().Int("port", server.DefaultPort, "http port to listen on")
	ServeCmd.Flags().Duration("render-timeout", 0, "bound a whole render, zero disables the bound")
	ServeCmd.Flags().Int("max-concurrent-renders", 0, "bound the simultaneous renders, zero disables the bound")
	ServeCmd.Flags().Float64("rate-limit", 0, "renders allowed per second, zero disables the limit")
	RootCmd.AddCommand(ServeCmd)
}

var ServeCmd = &cobra.Command{
	Use:          "serve",
	Short:        "serve the chart gif over http",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), cmd.Flags())
	},
}

// serve runs the http server until a signal arrives or ctx is done.
func serve(ctx context.Context, flags *pflag.FlagSet) error {
	if err := viper.BindPFlags(flags); err != nil {
		return err
	}

	// keep the environment names of the node service working
	if err := viper.BindEnv("driver", "DRIVER", "RENDER_DRIVER"); err != nil {
		return err
	}

	if !viper.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	renderer, err := cmdutil.NewRenderer()
	if err != nil {
		return err
	}

	renderer.Timeout = viper.GetDuration("render-timeout")
	renderer.SetMaxConcurrency(viper.GetInt("max-concurrent-renders"))

	srv := &server.Server{
		Renderer:  renderer,
		RateLimit: viper.GetFloat64("rate-limit"),
	}

	port := viper.GetInt("port")
	if port <= 0 {
		port = server.DefaultPort
	}

	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errC := make(chan error, 1)
	go func() {
		errC <- srv.Run(ctx, port)
	}()

	go func() {
		cmdutil.WaitForSignal(ctx)
		cancel()
	}()

	log.Infof("serving chart gif with the %s driver on port %d", renderer.Driver, port)
	return <-errC
}
