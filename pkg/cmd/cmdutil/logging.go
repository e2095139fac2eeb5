package cmdutil

import (
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment is the deployment stage read from WAVEGIF_ENV.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

func CurrentEnvironment() Environment {
	switch strings.ToLower(os.Getenv("WAVEGIF_ENV")) {
	case "production", "prod":
		return EnvProduction
	case "staging", "stag":
		return EnvStaging
	}

	return EnvDevelopment
}

// Deployed is true for the stages that log json lines to the rotated file.
func (e Environment) Deployed() bool {
	return e == EnvProduction || e == EnvStaging
}

type LogFormatterType string

const (
	LogFormatterTypePrefixed LogFormatterType = "prefixed"
	LogFormatterTypeText     LogFormatterType = "text"
	LogFormatterTypeJson     LogFormatterType = "json"
)

var logFormatters = map[LogFormatterType]func() log.Formatter{
	LogFormatterTypePrefixed: func() log.Formatter { return &prefixed.TextFormatter{} },
	LogFormatterTypeText:     func() log.Formatter { return &log.TextFormatter{} },
	LogFormatterTypeJson:     func() log.Formatter { return &log.JSONFormatter{} },
}

func ParseLogFormatterType(s string) (LogFormatterType, error) {
	if s == "" {
		return LogFormatterTypePrefixed, nil
	}

	t := LogFormatterType(strings.ToLower(s))
	if _, ok := logFormatters[t]; !ok {
		return "", errors.Errorf("unsupported log formatter %q", s)
	}

	return t, nil
}

type LoggingOptions struct {
	Debug     bool
	Formatter LogFormatterType
	Env       Environment

	// LogFile receives the json lines of the deployed stages
	LogFile string
}

// SetupLogging configures the logger. Deployed stages always log json and
// mirror every entry into a size rotated file.
func SetupLogging(logger *log.Logger, options LoggingOptions) {
	formatter := options.Formatter
	if options.Env.Deployed() {
		formatter = LogFormatterTypeJson
	}

	newFormatter, ok := logFormatters[formatter]
	if !ok {
		newFormatter = logFormatters[LogFormatterTypePrefixed]
	}
	logger.SetFormatter(newFormatter())

	if options.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	if !options.Env.Deployed() {
		return
	}

	logFile := options.LogFile
	if logFile == "" {
		logFile = path.Join("log", "wavegif.log")
	}

	writer := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     28,
	}

	logger.AddHook(lfshook.NewHook(
		lfshook.WriterMap{
			log.DebugLevel: writer,
			log.InfoLevel:  writer,
			log.WarnLevel:  writer,
			log.ErrorLevel: writer,
			log.FatalLevel: writer,
		},
		&log.JSONFormatter{},
	))
}
