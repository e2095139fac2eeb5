package cmdutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/c9s/wavegif/pkg/surface"
)

func TestParseLogFormatterType(t *testing.T) {
	for s, expected := range map[string]LogFormatterType{
		"":         LogFormatterTypePrefixed,
		"prefixed": LogFormatterTypePrefixed,
		"TEXT":     LogFormatterTypeText,
		"json":     LogFormatterTypeJson,
	} {
		actual, err := ParseLogFormatterType(s)
		if assert.NoError(t, err, s) {
			assert.Equal(t, expected, actual, s)
		}
	}

	_, err := ParseLogFormatterType("xml")
	assert.Error(t, err)
}

func TestCurrentEnvironment(t *testing.T) {
	t.Setenv("WAVEGIF_ENV", "")
	assert.Equal(t, EnvDevelopment, CurrentEnvironment())
	assert.False(t, CurrentEnvironment().Deployed())

	t.Setenv("WAVEGIF_ENV", "prod")
	assert.Equal(t, EnvProduction, CurrentEnvironment())

	t.Setenv("WAVEGIF_ENV", "stag")
	assert.Equal(t, EnvStaging, CurrentEnvironment())
	assert.True(t, CurrentEnvironment().Deployed())
}

func TestSetupLogging(t *testing.T) {
	logger := log.New()
	SetupLogging(logger, LoggingOptions{Formatter: LogFormatterTypeText, Env: EnvDevelopment})
	assert.IsType(t, &log.TextFormatter{}, logger.Formatter)
	assert.Equal(t, log.InfoLevel, logger.Level)
	assert.Empty(t, logger.Hooks)

	logger = log.New()
	SetupLogging(logger, LoggingOptions{Debug: true, Formatter: "unknown", Env: EnvDevelopment})
	assert.IsType(t, &prefixed.TextFormatter{}, logger.Formatter)
	assert.Equal(t, log.DebugLevel, logger.Level)

	// deployed stages force json and mirror the entries into the log file
	logFile := filepath.Join(t.TempDir(), "wavegif.log")
	logger = log.New()
	SetupLogging(logger, LoggingOptions{Formatter: LogFormatterTypePrefixed, Env: EnvProduction, LogFile: logFile})
	assert.IsType(t, &log.JSONFormatter{}, logger.Formatter)
	assert.Len(t, logger.Hooks[log.InfoLevel], 1)

	logger.Info("rendered")
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"rendered"`)
}

func TestWaitForSignal_ContextDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.Nil(t, WaitForSignal(ctx))
}

func TestNewRenderer(t *testing.T) {
	defer viper.Reset()

	viper.Set("driver", "GoChart")
	viper.Set("quality", 5)
	viper.Set("width", 640)

	r, err := NewRenderer()
	require.NoError(t, err)
	assert.Equal(t, string(surface.DriverGoChart), r.Driver)
	assert.IsType(t, &surface.GoChartLauncher{}, r.Launcher)
	assert.Equal(t, surface.DefaultWidth, r.Encoder.Width)
	assert.Equal(t, surface.DefaultHeight, r.Encoder.Height)
	assert.Equal(t, 5, r.Encoder.Quality)
}

func TestNewRenderer_UnknownDriver(t *testing.T) {
	defer viper.Reset()

	viper.Set("driver", "phantomjs")
	_, err := NewRenderer()
	assert.Error(t, err)
}

func TestSurfaceFlags_FixedCanvas(t *testing.T) {
	flags := pflag.NewFlagSet("surface", pflag.ContinueOnError)
	SurfaceFlags(flags)

	assert.NotNil(t, flags.Lookup("driver"))
	assert.Nil(t, flags.Lookup("width"))
	assert.Nil(t, flags.Lookup("height"))
}
