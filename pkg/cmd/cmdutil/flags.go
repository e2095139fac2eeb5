package cmdutil

import (
	"github.com/spf13/pflag"

	"github.com/c9s/wavegif/pkg/surface"
)

// PersistentFlags defines the flags shared by every command
func PersistentFlags(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "debug flag")
	flags.String("log-formatter", string(LogFormatterTypePrefixed), "log formatter: prefixed, text or json")
	flags.String("dotenv", ".env.local", "the dotenv file to load")
}

// SurfaceFlags defines the flags for launching render surfaces
func SurfaceFlags(flags *pflag.FlagSet) {
	flags.String("driver", string(surface.DriverChromedp), "render surface driver: chromedp, lorca or gochart")
	flags.String("chrome-path", "", "the chrome executable path, looked up from PATH when empty")
	flags.Bool("no-headless", false, "show the browser window")
	flags.Int("quality", 20, "gif palette sampling interval, lower is better but slower")
}
