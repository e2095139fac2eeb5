package cmd

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/wavegif/pkg/server"
)

func freePort(t *testing.T) int {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestRootCmd_ServesWithoutSubCommand(t *testing.T) {
	defer viper.Reset()

	port := freePort(t)
	viper.Set("driver", "gochart")
	viper.Set("port", port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	RootCmd.SetContext(ctx)

	errC := make(chan error, 1)
	go func() {
		errC <- RootCmd.RunE(RootCmd, nil)
	}()

	baseURL := "http://127.0.0.1:" + strconv.Itoa(port)
	require.True(t, server.PingUntil(ctx, baseURL, 10*time.Second, func() {}))

	resp, err := http.Get(baseURL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/gif", resp.Header.Get("Content-Type"))

	cancel()
	select {
	case err := <-errC:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
