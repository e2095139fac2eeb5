package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/zserge/lorca"

	"github.com/c9s/wavegif/pkg/render"
	"github.com/c9s/wavegif/pkg/server"
	"github.com/c9s/wavegif/pkg/surface"
)

// wavegif-preview serves the chart gif on a free local port and shows it in
// a chrome window.
func main() {
	dotenvFile := ".env.local"
	if _, err := os.Stat(dotenvFile); err == nil {
		if err := godotenv.Load(dotenvFile); err != nil {
			log.WithError(err).Error("error loading dotenv file")
			return
		}
	}

	var args []string
	if runtime.GOOS == "linux" {
		args = append(args, "--class=wavegif")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// here allocate a chrome window with a blank page.
	ui, err := lorca.New("", "", surface.DefaultWidth+40, surface.DefaultHeight+60, args...)
	if err != nil {
		log.WithError(err).Error("failed to initialize the window")
		return
	}

	defer ui.Close()

	options := surface.DefaultOptions()
	options.ChromePath = os.Getenv("CHROME_PATH")

	driver := os.Getenv("RENDER_DRIVER")
	launcher, err := surface.NewLauncher(driver, options)
	if err != nil {
		log.WithError(err).Error("can not create the render surface launcher")
		return
	}

	d, _ := surface.ParseDriver(driver)
	srv := &server.Server{Renderer: render.NewRenderer(launcher, string(d))}

	// find a free port for binding the server
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.WithError(err).Error("can not bind listener")
		return
	}

	defer ln.Close()

	baseURL := "http://" + ln.Addr().String()

	go func() {
		if err := srv.RunWithListener(ctx, ln); err != nil {
			log.WithError(err).Errorf("server error")
		}
	}()

	log.Infof("pinging the server at %s", baseURL)
	server.PingUntil(ctx, baseURL, time.Minute, func() {
		log.Infof("got pong, loading base url %s to ui...", baseURL)

		if err := ui.Load(baseURL); err != nil {
			log.WithError(err).Error("failed to load page")
		}
	})

	// Wait until the interrupt signal arrives or browser window is closed
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)

	select {
	case <-sigc:
	case <-ui.Done():
	}

	log.Println("exiting...")
}
