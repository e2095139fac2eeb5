package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/c9s/wavegif/pkg/cmd/cmdutil"
)

var RootCmd = &cobra.Command{
	Use:   "wavegif",
	Short: "wavegif renders animated elliott wave chart gifs",
	Long:  "wavegif renders a candlestick chart with its primary and corrective elliott waves into an animated gif",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dotenvFile := viper.GetString("dotenv")
		if _, err := os.Stat(dotenvFile); err == nil {
			if err := godotenv.Load(dotenvFile); err != nil {
				return err
			}
		}

		formatter, err := cmdutil.ParseLogFormatterType(viper.GetString("log-formatter"))
		if err != nil {
			return err
		}

		cmdutil.SetupLogging(log.StandardLogger(), cmdutil.LoggingOptions{
			Debug:     viper.GetBool("debug"),
			Formatter: formatter,
			Env:       cmdutil.CurrentEnvironment(),
		})
		return nil
	},

	// wavegif without a sub-command serves like `wavegif serve` on $PORT
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), ServeCmd.Flags())
	},
}

func init() {
	cmdutil.PersistentFlags(RootCmd.PersistentFlags())
}

func Execute() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	if err := viper.BindPFlags(RootCmd.Flags()); err != nil {
		log.WithError(err).Errorf("failed to bind local flags. please check the flag settings.")
	}

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
