package cmdutil

import (
	"github.com/spf13/viper"

	"github.com/c9s/wavegif/pkg/render"
	"github.com/c9s/wavegif/pkg/surface"
)

// NewRenderer builds the renderer from the surface flags bound to viper.
func NewRenderer() (*render.Renderer, error) {
	driver, err := surface.ParseDriver(viper.GetString("driver"))
	if err != nil {
		return nil, err
	}

	options := surface.DefaultOptions()
	options.ChromePath = viper.GetString("chrome-path")
	options.Headless = !viper.GetBool("no-headless")

	launcher, err := surface.NewLauncher(string(driver), options)
	if err != nil {
		return nil, err
	}

	// the canvas is always the default 800x600, the encoder defaults match it
	r := render.NewRenderer(launcher, string(driver))
	if q := viper.GetInt("quality"); q > 0 {
		r.Encoder.Quality = q
	}

	return r, nil
}
