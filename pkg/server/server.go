package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/wavegif/pkg/render"
)

var log = logrus.WithField("component", "server")

const DefaultPort = 3000

type Server struct {
	Renderer *render.Renderer

	// RateLimit is the number of renders allowed per second, zero disables it
	RateLimit float64
}

func (s *Server) Handler() http.Handler {
	return s.newEngine()
}

// Run listens on the given port of all interfaces.
func (s *Server) Run(ctx context.Context, port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return errors.Wrapf(err, "listen on port %d", port)
	}

	return s.RunWithListener(ctx, ln)
}

// RunWithListener serves until ctx is canceled, then shuts the http server
// down and waits for the in-flight renders.
func (s *Server) RunWithListener(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.newEngine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Infof("server running on %s", l.Addr().String())

	errC := make(chan error, 1)
	go func() {
		errC <- srv.Serve(l)
	}()

	select {
	case <-ctx.Done():
		log.Infof("shutting down http server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)

	case err := <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
